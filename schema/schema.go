package schema

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Schema is a named field list describing a DTO. It is immutable once
// registered in a Catalogue and safe for concurrent use.
type Schema struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`

	target reflect.Type
}

// New returns a schema with the given fields. Values validated against it
// materialize as map[string]any.
func New(name string, fields ...Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

// Of returns a schema whose validated values materialize as *T.
func Of[T any](name string, fields ...Field) *Schema {
	return Bind[T](New(name, fields...))
}

// Bind returns a copy of s whose validated values materialize as *T.
func Bind[T any](s *Schema) *Schema {
	out := *s
	out.Fields = append([]Field(nil), s.Fields...)
	out.target = reflect.TypeFor[T]()
	return &out
}

// Target returns the Go type values materialize into, or nil for maps.
func (s *Schema) Target() reflect.Type { return s.target }

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of required fields in declaration order.
func (s *Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Check reports whether the schema definition itself is well formed.
func (s *Schema) Check() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s: field without name", ErrInvalidSchema, s.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, s.Name, f.Name)
		}
		seen[f.Name] = true

		if !validType(f.Type) {
			return fmt.Errorf("%w: %s.%s: unknown type %q", ErrInvalidSchema, s.Name, f.Name, f.Type)
		}
		if f.Type == TypeArray && f.Items != "" && !validType(f.Items) {
			return fmt.Errorf("%w: %s.%s: unknown item type %q", ErrInvalidSchema, s.Name, f.Name, f.Items)
		}
		if f.Pattern != "" {
			if _, err := compilePattern(f.Pattern); err != nil {
				return fmt.Errorf("%w: %s.%s: %w", ErrInvalidSchema, s.Name, f.Name, err)
			}
		}
	}
	return nil
}

// Materialize turns a coerced, validated object into the value handlers
// receive: a *T when the schema is bound to a Go type, otherwise obj itself.
func (s *Schema) Materialize(obj map[string]any) (any, error) {
	if s.target == nil {
		return obj, nil
	}

	out := reflect.New(s.target)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMaterialize, s.Name, err)
	}
	if err := dec.Decode(obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMaterialize, s.Name, err)
	}
	return out.Interface(), nil
}

func validType(t Type) bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	default:
		return false
	}
}
