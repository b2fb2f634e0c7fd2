package apiroute

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
)

// Mux is the HTTP layer routes are mounted on. chi.Router satisfies it;
// ServeMux adapts *http.ServeMux.
type Mux interface {
	Method(method, pattern string, h http.Handler)
}

type serveMux struct{ mux *http.ServeMux }

// ServeMux adapts a standard library mux to Mux.
func ServeMux(m *http.ServeMux) Mux { return serveMux{mux: m} }

func (s serveMux) Method(method, pattern string, h http.Handler) {
	s.mux.Handle(method+" "+pattern, h)
}

type bindConfig struct {
	errorHandler ErrorHandler
	logger       *slog.Logger
	skipUnbound  bool
}

// BindOption configures Bind.
type BindOption func(*bindConfig)

// WithErrorHandler sets the sink for handler errors and panics.
func WithErrorHandler(h ErrorHandler) BindOption {
	return func(c *bindConfig) {
		c.errorHandler = h
	}
}

// WithLogger sets the logger used for binding diagnostics and, unless
// WithErrorHandler is given, by the default error handler.
func WithLogger(l *slog.Logger) BindOption {
	return func(c *bindConfig) {
		c.logger = l
	}
}

// SkipUnbound logs and skips descriptors no controller provides a handler
// for, instead of failing. Use it when a process activates only a subset of
// the controllers whose routes were declared.
func SkipUnbound() BindOption {
	return func(c *bindConfig) {
		c.skipUnbound = true
	}
}

// Bind mounts every descriptor in reg on mux using the handlers the
// controllers provide. Each route runs its middlewares in declared order,
// then its validation stages, then the handler; errors and panics from
// validation or the handler go to the ErrorHandler.
//
// Bind fails without mounting anything when a handler ID is provided twice,
// when a provided handler has no descriptor, when a descriptor lacks a
// method or path or carries an invalid validation schema, when two
// descriptors share a method and path, or, unless SkipUnbound is set, when
// a descriptor has no handler. It returns the mounted descriptors in
// registry order.
func Bind(mux Mux, reg *Registry, controllers []Controller, opts ...BindOption) ([]*Descriptor, error) {
	cfg := &bindConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = DefaultErrorHandler(cfg.logger)
	}

	table, err := handlerTable(reg, controllers)
	if err != nil {
		return nil, err
	}

	type mount struct {
		d *Descriptor
		h http.Handler
	}
	var mounts []mount
	seen := make(map[string]bool)

	for _, d := range reg.All() {
		h, ok := table[d.HandlerID]
		if !ok {
			if !cfg.skipUnbound {
				return nil, fmt.Errorf("%w: %s", ErrUnboundRoute, d.HandlerID)
			}
			cfg.logger.Warn("route declared but not bound",
				"handler", d.HandlerID,
				"method", d.Method,
				"path", d.Path,
			)
			continue
		}
		if err := checkDescriptor(d); err != nil {
			return nil, err
		}
		key := d.Method + " " + toOpenAPIPath(d.Path)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateOperation, d.Method, d.Path)
		}
		seen[key] = true
		mounts = append(mounts, mount{d: d, h: buildRoute(d, h, cfg.errorHandler)})
	}

	out := make([]*Descriptor, 0, len(mounts))
	for _, m := range mounts {
		pattern := toOpenAPIPath(m.d.Path)
		mux.Method(m.d.Method, pattern, m.h)
		cfg.logger.Debug("route mounted",
			"handler", m.d.HandlerID,
			"method", m.d.Method,
			"pattern", pattern,
		)
		out = append(out, m.d)
	}
	return out, nil
}

// handlerTable merges the controllers' handler tables and checks them
// against the registry.
func handlerTable(reg *Registry, controllers []Controller) (Handlers, error) {
	table := make(Handlers)
	for _, c := range controllers {
		hs := c.Handlers()

		ids := make([]string, 0, len(hs))
		for id := range hs {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if _, dup := table[id]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateHandler, id)
			}
			if _, ok := reg.Lookup(id); !ok {
				return nil, fmt.Errorf("%w: %s", ErrUndeclaredHandler, id)
			}
			table[id] = hs[id]
		}
	}
	return table, nil
}

func checkDescriptor(d *Descriptor) error {
	if !d.Complete() {
		return fmt.Errorf("%w: %s (method %q, path %q)", ErrIncompleteRoute, d.HandlerID, d.Method, d.Path)
	}
	if !supportedMethod(d.Method) {
		return fmt.Errorf("%w: %s: %s", ErrInvalidMethod, d.HandlerID, d.Method)
	}
	for _, v := range d.validators {
		if v.err != nil {
			return fmt.Errorf("%s: %w", d.HandlerID, v.err)
		}
	}
	return nil
}

// buildRoute assembles middlewares -> error forwarder -> validation -> h.
func buildRoute(d *Descriptor, h HandlerFunc, onError ErrorHandler) http.Handler {
	handler := forward(pipeline(d, h), onError)
	for i := len(d.Middlewares) - 1; i >= 0; i-- {
		handler = d.Middlewares[i](handler)
	}
	return handler
}

// forward runs h and reports a returned error or a recovered panic to
// onError.
func forward(h HandlerFunc, onError ErrorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				onError(w, r, &panicError{value: rec, stack: debug.Stack()})
			}
		}()
		if err := h(w, r); err != nil {
			onError(w, r, err)
		}
	})
}

// panicError carries a recovered panic to the ErrorHandler.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

// Unwrap exposes a panicked error value to errors.Is and errors.As.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
