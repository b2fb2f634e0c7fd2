package apiroute

import "net/http"

// HandlerFunc is a business handler. It reads the already validated request
// and writes the response; a returned error is forwarded to the binder's
// ErrorHandler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handlers maps handler IDs to bound handler functions.
type Handlers map[string]HandlerFunc

// Controller exposes its handlers as an explicit table, typically built from
// method values so each handler stays bound to its instance:
//
//	func (c *UserController) Handlers() apiroute.Handlers {
//	    return apiroute.Handlers{"createUser": c.createUser}
//	}
type Controller interface {
	Handlers() Handlers
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func() Handlers

// Handlers implements Controller.
func (f ControllerFunc) Handlers() Handlers { return f() }
