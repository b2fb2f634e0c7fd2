package apiroute

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware is the standard middleware signature compatible with the entire
// Go middleware ecosystem.
type Middleware func(next http.Handler) http.Handler

// Chain composes middleware so that the first argument runs first.
func Chain(mw ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}

// Recovery returns middleware that recovers from panics and responds with 500.
// Routes mounted by Bind already forward their own panics to the
// ErrorHandler; Recovery guards everything else on the server.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("panic recovered",
						"panic", rec,
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
					)
					writeError(w, http.StatusInternalServerError, ErrorResponse{
						Status:  "error",
						Message: http.StatusText(http.StatusInternalServerError),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
