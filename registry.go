package apiroute

import "github.com/bjaus/apiroute/schema"

// Descriptor is the accumulated metadata for one declared endpoint. It is
// built by Declarators at startup and must not be modified once a Binder or
// Generate has read it.
type Descriptor struct {
	HandlerID string
	Method    string
	Path      string
	Summary   string

	BodySchema   string
	QuerySchema  string
	ParamsSchema string

	// Middlewares run before validation in insertion order.
	Middlewares []Middleware

	// validators run in declaration order, first declared outermost.
	validators []*validator
}

// Complete reports whether the descriptor has both a method and a path.
func (d *Descriptor) Complete() bool {
	return d.Method != "" && d.Path != ""
}

// Schemas returns the schemas installed by validation declarators in the
// order their stages run.
func (d *Descriptor) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, len(d.validators))
	for i, v := range d.validators {
		out[i] = v.schema
	}
	return out
}

// Registry holds exactly one Descriptor per handler ID, in creation order.
// It performs no validation; Bind and Generate enforce completeness.
// Registries are populated from a single goroutine during startup.
type Registry struct {
	routes []*Descriptor
	index  map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Descriptor)}
}

// FindOrCreate returns the descriptor for handlerID, creating an empty one
// if none exists. Callers mutate the returned descriptor in place.
func (r *Registry) FindOrCreate(handlerID string) *Descriptor {
	if d, ok := r.index[handlerID]; ok {
		return d
	}
	d := &Descriptor{HandlerID: handlerID}
	r.index[handlerID] = d
	r.routes = append(r.routes, d)
	return d
}

// Lookup returns the descriptor for handlerID without creating one.
func (r *Registry) Lookup(handlerID string) (*Descriptor, bool) {
	d, ok := r.index[handlerID]
	return d, ok
}

// All returns every descriptor in creation order.
func (r *Registry) All() []*Descriptor {
	return append([]*Descriptor(nil), r.routes...)
}

// Len returns the number of descriptors.
func (r *Registry) Len() int { return len(r.routes) }
