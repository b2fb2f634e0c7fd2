package apiroute

import (
	"encoding/json"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// ServeSpec registers a GET handler at the given pattern that serves the
// document as JSON.
func ServeSpec(mux Mux, pattern string, spec *OpenAPISpec) {
	mux.Method(http.MethodGet, pattern, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(spec)
	}))
}

// ServeSpecYAML registers a GET handler at the given pattern that serves the
// document as YAML.
func ServeSpecYAML(mux Mux, pattern string, spec *OpenAPISpec) {
	mux.Method(http.MethodGet, pattern, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		yaml.NewEncoder(w).Encode(spec)
	}))
}

// WriteSpec writes the document as indented JSON to w.
func WriteSpec(w io.Writer, spec *OpenAPISpec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(spec)
}

// WriteSpecYAML writes the document as YAML to w.
func WriteSpecYAML(w io.Writer, spec *OpenAPISpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return err
	}
	return enc.Close()
}
