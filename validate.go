package apiroute

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/bjaus/apiroute/schema"
)

// In identifies the request segment a validation stage reads.
type In int

// Request segments.
const (
	InBody In = iota
	InQuery
	InParams
)

// String returns the segment name.
func (in In) String() string {
	switch in {
	case InBody:
		return "body"
	case InQuery:
		return "query"
	case InParams:
		return "params"
	default:
		return fmt.Sprintf("In(%d)", int(in))
	}
}

func (in In) failure() string {
	switch in {
	case InQuery:
		return "Query validation failed"
	case InParams:
		return "Params validation failed"
	default:
		return "Validation failed"
	}
}

// Structural failures reported before coercion.
const (
	msgBodyMissing  = "Request body is missing"
	msgBodyInvalid  = "Request body is not a valid JSON object"
	msgBodyTooLarge = "Request body is too large"
)

// rejection is a structural failure found while reading a segment.
type rejection struct {
	status  int
	message string
}

func badRequest(msg string) *rejection {
	return &rejection{status: http.StatusBadRequest, message: msg}
}

// ValidateBody validates the JSON request body against s. On success the
// handler sees the coerced body both through BodyOf and as r.Body.
func ValidateBody(s *schema.Schema) Declarator { return validate(InBody, s) }

// ValidateQuery validates the query string against s. On success the
// handler sees the coerced values both through QueryOf and as r.URL.RawQuery.
func ValidateQuery(s *schema.Schema) Declarator { return validate(InQuery, s) }

// ValidateParams validates the path parameters against s. On success the
// handler sees the coerced values both through ParamsOf and as the router's
// URL parameters.
func ValidateParams(s *schema.Schema) Declarator { return validate(InParams, s) }

// validate records the schema name on the descriptor and installs a stage.
// Stages run in the order they were first declared; declaring the same
// segment again replaces its schema without moving the stage.
func validate(in In, s *schema.Schema) Declarator {
	return func(d *Descriptor) {
		switch in {
		case InBody:
			d.BodySchema = s.Name
		case InQuery:
			d.QuerySchema = s.Name
		case InParams:
			d.ParamsSchema = s.Name
		}

		err := checkSegmentSchema(in, s)
		for _, v := range d.validators {
			if v.in == in {
				v.schema = s
				v.err = err
				return
			}
		}
		d.validators = append(d.validators, &validator{in: in, schema: s, err: err})
	}
}

type validator struct {
	in     In
	schema *schema.Schema
	err    error // reported by Bind and Generate
}

// checkSegmentSchema checks s and that its fields fit the segment. Query
// strings carry scalars and lists of scalars; path parameters only scalars.
func checkSegmentSchema(in In, s *schema.Schema) error {
	if err := s.Check(); err != nil {
		return err
	}
	if in == InBody {
		return nil
	}
	for _, f := range s.Fields {
		bad := f.Type == schema.TypeObject || f.Items == schema.TypeObject
		if in == InParams && f.Type == schema.TypeArray {
			bad = true
		}
		if bad {
			return fmt.Errorf("%w: %s.%s: %s field cannot be of type %s", schema.ErrInvalidSchema, s.Name, f.Name, in, f.Type)
		}
	}
	return nil
}

// pipeline composes the descriptor's validation stages around h so that the
// first declared stage runs first. Any stage that rejects the request stops
// the chain.
func pipeline(d *Descriptor, h HandlerFunc) HandlerFunc {
	params := pathParams(d.Path)
	for i := len(d.validators) - 1; i >= 0; i-- {
		h = d.validators[i].wrap(params, h)
	}
	return h
}

func (v *validator) wrap(params []string, next HandlerFunc) HandlerFunc {
	s := v.schema
	return func(w http.ResponseWriter, r *http.Request) error {
		raw, rej := v.read(r, params)
		if rej != nil {
			writeError(w, rej.status, ErrorResponse{Status: "error", Message: rej.message})
			return nil
		}

		obj := s.Coerce(raw)
		if vs := s.Validate(obj); len(vs) > 0 {
			writeError(w, http.StatusBadRequest, ErrorResponse{
				Status:  "error",
				Message: v.in.failure(),
				Errors:  vs.Strings(),
			})
			return nil
		}

		val, err := s.Materialize(obj)
		if err != nil {
			return err
		}

		r = r.WithContext(withValidated(r.Context(), v.in, val))
		if err := v.replace(r, obj); err != nil {
			return err
		}
		return next(w, r)
	}
}

// read extracts the raw segment.
func (v *validator) read(r *http.Request, params []string) (map[string]any, *rejection) {
	switch v.in {
	case InQuery:
		raw := make(map[string]any)
		for k, vals := range r.URL.Query() {
			if len(vals) == 1 {
				raw[k] = vals[0]
			} else {
				raw[k] = vals
			}
		}
		return raw, nil

	case InParams:
		raw := make(map[string]any, len(params))
		for _, name := range params {
			if val := paramValue(r, name); val != "" {
				raw[name] = val
			}
		}
		return raw, nil

	default:
		return readBody(r)
	}
}

func readBody(r *http.Request) (map[string]any, *rejection) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, badRequest(msgBodyMissing)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &rejection{status: http.StatusRequestEntityTooLarge, message: msgBodyTooLarge}
		}
		return nil, badRequest(msgBodyInvalid)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, badRequest(msgBodyMissing)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, badRequest(msgBodyInvalid)
	}
	return raw, nil
}

// replace makes the coerced object visible under the segment's usual access
// path. r is the per-stage copy created by WithContext.
func (v *validator) replace(r *http.Request, obj map[string]any) error {
	switch v.in {
	case InQuery:
		q := make(url.Values, len(obj))
		for k, val := range obj {
			if list, ok := val.([]any); ok {
				for _, item := range list {
					q.Add(k, fmt.Sprint(item))
				}
				continue
			}
			q.Set(k, fmt.Sprint(val))
		}
		u := *r.URL
		u.RawQuery = q.Encode()
		r.URL = &u

	case InParams:
		for k, val := range obj {
			setParamValue(r, k, fmt.Sprint(val))
		}

	default:
		b, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("encode coerced body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(b))
		r.ContentLength = int64(len(b))
	}
	return nil
}

func paramValue(r *http.Request, name string) string {
	if val := chi.URLParam(r, name); val != "" {
		return val
	}
	return r.PathValue(name)
}

func setParamValue(r *http.Request, name, val string) {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			if k == name {
				rctx.URLParams.Values[i] = val
			}
		}
	}
	r.SetPathValue(name, val)
}
