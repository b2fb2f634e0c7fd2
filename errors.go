package apiroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Sentinel errors for route declaration, binding and document generation.
var (
	ErrIncompleteRoute    = errors.New("route is missing method or path")
	ErrUnboundRoute       = errors.New("no handler provided for route")
	ErrDuplicateHandler   = errors.New("handler provided by more than one controller")
	ErrUndeclaredHandler  = errors.New("handler has no declared route")
	ErrDuplicateOperation = errors.New("more than one route declared for operation")
	ErrInvalidMethod      = errors.New("unsupported route method")
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ErrorResponse is the JSON body written for every error the framework
// reports to a client.
type ErrorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// ErrorHandler is the centralized sink for errors returned or raised by
// route handlers.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler writes err as an ErrorResponse. Server errors are
// logged and their message is replaced with the status text.
func DefaultErrorHandler(logger *slog.Logger) ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := ErrorStatus(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			args := []any{
				"err", err,
				"method", r.Method,
				"path", r.URL.Path,
			}
			var pe *panicError
			if errors.As(err, &pe) {
				args = append(args, "stack", string(pe.stack))
			}
			logger.ErrorContext(r.Context(), "handler failed", args...)
			msg = http.StatusText(status)
		}
		writeError(w, status, ErrorResponse{Status: "error", Message: msg})
	}
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(body)
}
