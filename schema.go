package apiroute

import "github.com/bjaus/apiroute/schema"

// JSONSchema represents a JSON Schema object (the OpenAPI 3.0 subset).
type JSONSchema struct {
	Type        string                `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string                `json:"format,omitempty" yaml:"format,omitempty"`
	Properties  map[string]JSONSchema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *JSONSchema           `json:"items,omitempty" yaml:"items,omitempty"`
	Required    []string              `json:"required,omitempty" yaml:"required,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Enum        []string              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any                   `json:"default,omitempty" yaml:"default,omitempty"`
	MinLength   *int                  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int                  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum     *float64              `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64              `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Pattern     string                `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// componentRef returns the reference to a named component schema.
func componentRef(name string) string {
	return "#/components/schemas/" + name
}

// objectSchema renders a DTO schema as a JSON Schema object.
func objectSchema(s *schema.Schema) JSONSchema {
	out := JSONSchema{
		Type:       "object",
		Properties: make(map[string]JSONSchema, len(s.Fields)),
		Required:   s.Required(),
	}
	for _, f := range s.Fields {
		out.Properties[f.Name] = fieldSchema(f)
	}
	return out
}

// fieldSchema renders one field with its constraints.
func fieldSchema(f schema.Field) JSONSchema {
	js := JSONSchema{
		Type:        string(f.Type),
		Format:      f.Format,
		Description: f.Description,
		Enum:        f.Enum,
		Default:     f.Default,
		MinLength:   f.MinLength,
		MaxLength:   f.MaxLength,
		Minimum:     f.Minimum,
		Maximum:     f.Maximum,
		Pattern:     f.Pattern,
	}
	if f.Type == schema.TypeArray {
		items := JSONSchema{Type: string(f.Items)}
		js.Items = &items
	}
	return js
}
