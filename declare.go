package apiroute

import (
	"net/http"
	"strings"
)

// Declarator contributes one fragment of a route descriptor.
type Declarator func(d *Descriptor)

// Declare finds or creates the descriptor for handlerID and applies decls in
// argument order. Declare may be called several times for the same handler;
// fragments accumulate on the shared descriptor.
//
//	reg.Declare("createUser",
//	    apiroute.Post("/users", "Create a user"),
//	    apiroute.ValidateBody(createUserSchema),
//	    apiroute.Use(audit),
//	)
func (r *Registry) Declare(handlerID string, decls ...Declarator) *Descriptor {
	d := r.FindOrCreate(handlerID)
	for _, decl := range decls {
		decl(d)
	}
	return d
}

// Handle sets the method, path and summary of a route. Paths use ":name"
// placeholders. Declaring a handler's route twice is the caller's
// responsibility; the last declaration wins.
func Handle(method, path, summary string) Declarator {
	return func(d *Descriptor) {
		d.Method = strings.ToUpper(method)
		d.Path = path
		d.Summary = summary
	}
}

// Get declares a GET route.
func Get(path, summary string) Declarator { return Handle(http.MethodGet, path, summary) }

// Post declares a POST route.
func Post(path, summary string) Declarator { return Handle(http.MethodPost, path, summary) }

// Put declares a PUT route.
func Put(path, summary string) Declarator { return Handle(http.MethodPut, path, summary) }

// Patch declares a PATCH route.
func Patch(path, summary string) Declarator { return Handle(http.MethodPatch, path, summary) }

// Delete declares a DELETE route.
func Delete(path, summary string) Declarator { return Handle(http.MethodDelete, path, summary) }

// Use appends middleware to the route. Repeated use accumulates in call
// order; middleware runs before request validation.
func Use(mw ...Middleware) Declarator {
	return func(d *Descriptor) {
		d.Middlewares = append(d.Middlewares, mw...)
	}
}

func supportedMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
