package apiroute

import "net/http"

// BodyLimit returns middleware that caps the request body at maxBytes.
// Declare it with Use on routes that validate their body: the body stage then
// rejects an oversized payload with 413 before the handler runs.
func BodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, ErrorResponse{Status: "error", Message: msgBodyTooLarge})
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
