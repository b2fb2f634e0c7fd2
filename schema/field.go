package schema

// Type is the JSON type of a field.
type Type string

// Field types.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Well-known string formats checked during validation.
const (
	FormatEmail    = "email"
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatURI      = "uri"
)

// Field describes one property of a schema and the constraints on it.
// Pointer-valued bounds are unset when nil.
type Field struct {
	Name        string   `yaml:"name"`
	Type        Type     `yaml:"type"`
	Format      string   `yaml:"format,omitempty"`
	Items       Type     `yaml:"items,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Default     any      `yaml:"default,omitempty"`
	MinLength   *int     `yaml:"minLength,omitempty"`
	MaxLength   *int     `yaml:"maxLength,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Enum        []string `yaml:"enum,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// String declares a string field.
func String(name string) Field { return Field{Name: name, Type: TypeString} }

// Integer declares an integer field.
func Integer(name string) Field { return Field{Name: name, Type: TypeInteger} }

// Number declares a floating point field.
func Number(name string) Field { return Field{Name: name, Type: TypeNumber} }

// Boolean declares a boolean field.
func Boolean(name string) Field { return Field{Name: name, Type: TypeBoolean} }

// Array declares a list field whose elements have the given type.
func Array(name string, items Type) Field {
	return Field{Name: name, Type: TypeArray, Items: items}
}

// Require marks the field as required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// WithDefault sets the value used when the field is absent.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// MinLen sets the minimum string length.
func (f Field) MinLen(n int) Field {
	f.MinLength = &n
	return f
}

// MaxLen sets the maximum string length.
func (f Field) MaxLen(n int) Field {
	f.MaxLength = &n
	return f
}

// Min sets the inclusive numeric lower bound.
func (f Field) Min(v float64) Field {
	f.Minimum = &v
	return f
}

// Max sets the inclusive numeric upper bound.
func (f Field) Max(v float64) Field {
	f.Maximum = &v
	return f
}

// Match sets a regular expression the string value must match.
func (f Field) Match(pattern string) Field {
	f.Pattern = pattern
	return f
}

// OneOf restricts a string field to the given values.
func (f Field) OneOf(values ...string) Field {
	f.Enum = append(f.Enum, values...)
	return f
}

// WithFormat sets the string format, e.g. FormatEmail.
func (f Field) WithFormat(format string) Field {
	f.Format = format
	return f
}

// Describe sets the field description used in generated documents.
func (f Field) Describe(desc string) Field {
	f.Description = desc
	return f
}
