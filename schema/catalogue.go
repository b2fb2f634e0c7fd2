package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Catalogue is the name-keyed collection of DTO schemas. It is populated at
// startup and read concurrently afterwards; it is not safe to Register while
// requests are being served.
type Catalogue struct {
	schemas map[string]*Schema
	order   []string
}

// NewCatalogue returns a catalogue holding the given schemas.
func NewCatalogue(schemas ...*Schema) (*Catalogue, error) {
	c := &Catalogue{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := c.Register(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds s to the catalogue. Names must be unique.
func (c *Catalogue) Register(s *Schema) error {
	if err := s.Check(); err != nil {
		return err
	}
	if _, ok := c.schemas[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, s.Name)
	}
	c.schemas[s.Name] = s
	c.order = append(c.order, s.Name)
	return nil
}

// Lookup returns the schema registered under name.
func (c *Catalogue) Lookup(name string) (*Schema, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.schemas[name]
	return s, ok
}

// Names returns the registered names in registration order.
func (c *Catalogue) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// All returns the registered schemas in registration order.
func (c *Catalogue) All() []*Schema {
	if c == nil {
		return nil
	}
	out := make([]*Schema, len(c.order))
	for i, name := range c.order {
		out[i] = c.schemas[name]
	}
	return out
}

type catalogueFile struct {
	Schemas []*Schema `yaml:"schemas"`
}

// LoadCatalogue reads a YAML catalogue of the form:
//
//	schemas:
//	  - name: CreateUserDto
//	    fields:
//	      - name: email
//	        type: string
//	        format: email
//	        required: true
func LoadCatalogue(r io.Reader) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode catalogue: %w", ErrInvalidSchema, err)
	}
	return NewCatalogue(file.Schemas...)
}
