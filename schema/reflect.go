package schema

import (
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

// Reflect derives a schema from the exported fields of struct type T, bound
// so that validated values materialize as *T. Field names come from json
// tags; constraints come from jsonschema tags:
//
//	type CreateUser struct {
//	    Email string `json:"email" jsonschema:"required,format=email"`
//	    Name  string `json:"name" jsonschema:"required,minLength=3"`
//	}
func Reflect[T any](name string) (*Schema, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	var zero T
	js := r.Reflect(&zero)
	if js.Properties == nil {
		return nil, fmt.Errorf("%w: %s: %T has no properties", ErrInvalidSchema, name, zero)
	}

	s := &Schema{Name: name}
	for pair := js.Properties.Oldest(); pair != nil; pair = pair.Next() {
		s.Fields = append(s.Fields, fieldFromJSONSchema(pair.Key, pair.Value, slices.Contains(js.Required, pair.Key)))
	}

	if err := s.Check(); err != nil {
		return nil, err
	}
	return Bind[T](s), nil
}

func fieldFromJSONSchema(name string, js *jsonschema.Schema, required bool) Field {
	f := Field{
		Name:        name,
		Type:        Type(js.Type),
		Format:      js.Format,
		Required:    required,
		Default:     js.Default,
		Pattern:     js.Pattern,
		Description: js.Description,
	}
	if f.Type == "" {
		f.Type = TypeObject
	}
	if js.Items != nil {
		f.Items = Type(js.Items.Type)
	}
	if js.MinLength != nil {
		f = f.MinLen(int(*js.MinLength))
	}
	if js.MaxLength != nil {
		f = f.MaxLen(int(*js.MaxLength))
	}
	if js.Minimum != "" {
		if v, err := js.Minimum.Float64(); err == nil {
			f = f.Min(v)
		}
	}
	if js.Maximum != "" {
		if v, err := js.Maximum.Float64(); err == nil {
			f = f.Max(v)
		}
	}
	for _, e := range js.Enum {
		f.Enum = append(f.Enum, fmt.Sprint(e))
	}
	return f
}
