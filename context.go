package apiroute

import (
	"context"
	"net/http"
)

type contextKey[T any] struct{}

// SetValue stores a typed value in the request context. For use in middleware.
func SetValue[T any](r *http.Request, val T) *http.Request {
	ctx := context.WithValue(r.Context(), contextKey[T]{}, val)
	return r.WithContext(ctx)
}

// GetValue retrieves a typed value from the request context. For use in handlers.
func GetValue[T any](ctx context.Context) (T, bool) {
	val, ok := ctx.Value(contextKey[T]{}).(T)
	return val, ok
}

type validatedKey struct{ in In }

func withValidated(ctx context.Context, in In, val any) context.Context {
	return context.WithValue(ctx, validatedKey{in: in}, val)
}

// Validated returns the coerced value produced by the validation stage for
// the given segment.
func Validated(r *http.Request, in In) (any, bool) {
	val := r.Context().Value(validatedKey{in: in})
	return val, val != nil
}

// ValueOf returns the validated value for a segment as T. Schemas bound to a
// Go type yield *T; unbound schemas yield map[string]any.
func ValueOf[T any](r *http.Request, in In) (T, bool) {
	val, ok := r.Context().Value(validatedKey{in: in}).(T)
	return val, ok
}

// BodyOf returns the validated body of a schema bound to T.
func BodyOf[T any](r *http.Request) (*T, bool) { return ValueOf[*T](r, InBody) }

// QueryOf returns the validated query of a schema bound to T.
func QueryOf[T any](r *http.Request) (*T, bool) { return ValueOf[*T](r, InQuery) }

// ParamsOf returns the validated path parameters of a schema bound to T.
func ParamsOf[T any](r *http.Request) (*T, bool) { return ValueOf[*T](r, InParams) }
