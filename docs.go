package apiroute

import (
	"html/template"
	"net/http"
)

// DocsOption configures the docs UI.
type DocsOption func(*docsConfig)

type docsConfig struct {
	title   string
	specURL string
}

// WithDocsTitle sets the page title for the docs UI.
func WithDocsTitle(title string) DocsOption {
	return func(c *docsConfig) {
		c.title = title
	}
}

// ServeDocs serves a Swagger UI page at the given pattern that loads the
// document from specURL.
func ServeDocs(mux Mux, pattern, specURL string, opts ...DocsOption) {
	cfg := &docsConfig{
		title:   "API Docs",
		specURL: specURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tmpl := template.Must(template.New("docs").Parse(docsHTML))

	mux.Method(http.MethodGet, pattern, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		tmpl.Execute(w, cfg)
	}))
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

// Title returns the docs config title (used in the template).
func (c *docsConfig) Title() string { return c.title }

// SpecURL returns the docs config spec URL (used in the template).
func (c *docsConfig) SpecURL() string { return c.specURL }
