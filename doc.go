// Package apiroute is a metadata-driven routing framework. Endpoints are
// declared against an explicit Registry, bound to controller handlers and
// mounted on an HTTP router by Bind, and described as an OpenAPI 3.0
// document by Generate.
//
// Declarations accumulate per handler ID, in any order:
//
//	reg := apiroute.NewRegistry()
//	reg.Declare("createUser",
//	    apiroute.Post("/users", "Create a user"),
//	    apiroute.ValidateBody(createUserSchema),
//	    apiroute.Use(audit),
//	)
//
// Controllers expose bound handlers through an explicit table:
//
//	func (c *UserController) Handlers() apiroute.Handlers {
//	    return apiroute.Handlers{"createUser": c.createUser}
//	}
//
// Bind mounts every declared route on any Mux (chi.Router satisfies it):
//
//	r := chi.NewRouter()
//	if _, err := apiroute.Bind(r, reg, []apiroute.Controller{users}); err != nil {
//	    log.Fatal(err)
//	}
//
// Each mounted route runs its middlewares, then its validation stages in
// declaration order, then the handler. A stage that rejects the request
// answers 400 with {"status":"error","message":...,"errors":[...]} and the
// handler never runs. Handlers read the coerced values with BodyOf,
// QueryOf and ParamsOf.
//
// The same registry, together with a schema.Catalogue, produces the
// document:
//
//	spec, err := apiroute.Generate(reg, catalogue, apiroute.WithTitle("Users"))
package apiroute
