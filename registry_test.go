package apiroute_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute"
	"github.com/bjaus/apiroute/schema"
)

func tagMiddleware(tag string, seen *[]string) apiroute.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*seen = append(*seen, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRegistry_FindOrCreate(t *testing.T) {
	t.Parallel()

	reg := apiroute.NewRegistry()

	a := reg.FindOrCreate("createUser")
	b := reg.FindOrCreate("createUser")
	c := reg.FindOrCreate("listUsers")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "createUser", a.HandlerID)
	assert.Empty(t, a.Method)
	assert.Empty(t, a.Path)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []*apiroute.Descriptor{a, c}, reg.All())

	got, ok := reg.Lookup("listUsers")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_one_descriptor_per_handler(t *testing.T) {
	t.Parallel()

	body := schema.New("CreateUserDto", schema.String("email"))
	query := schema.New("ListQuery", schema.Integer("page"))
	var seen []string

	tests := map[string][]apiroute.Declarator{
		"route first": {
			apiroute.Post("/users", "Create"),
			apiroute.ValidateBody(body),
			apiroute.Use(tagMiddleware("a", &seen)),
		},
		"middleware first": {
			apiroute.Use(tagMiddleware("a", &seen)),
			apiroute.ValidateQuery(query),
			apiroute.Post("/users", "Create"),
		},
		"validation first": {
			apiroute.ValidateBody(body),
			apiroute.Post("/users", "Create"),
		},
	}

	for name, decls := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg := apiroute.NewRegistry()
			for _, decl := range decls {
				reg.Declare("createUser", decl)
			}

			require.Equal(t, 1, reg.Len())
			d := reg.All()[0]
			assert.Equal(t, http.MethodPost, d.Method)
			assert.Equal(t, "/users", d.Path)
			assert.True(t, d.Complete())
		})
	}
}

func TestDeclare_Handle(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		decl       apiroute.Declarator
		wantMethod string
	}{
		"GET":         {decl: apiroute.Get("/x", "s"), wantMethod: http.MethodGet},
		"POST":        {decl: apiroute.Post("/x", "s"), wantMethod: http.MethodPost},
		"PUT":         {decl: apiroute.Put("/x", "s"), wantMethod: http.MethodPut},
		"PATCH":       {decl: apiroute.Patch("/x", "s"), wantMethod: http.MethodPatch},
		"DELETE":      {decl: apiroute.Delete("/x", "s"), wantMethod: http.MethodDelete},
		"lower case":  {decl: apiroute.Handle("patch", "/x", "s"), wantMethod: http.MethodPatch},
		"method name": {decl: apiroute.Handle(http.MethodGet, "/x", "s"), wantMethod: http.MethodGet},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d := apiroute.NewRegistry().Declare("h", tc.decl)
			assert.Equal(t, tc.wantMethod, d.Method)
			assert.Equal(t, "/x", d.Path)
			assert.Equal(t, "s", d.Summary)
		})
	}
}

func TestDeclare_Handle_last_write_wins(t *testing.T) {
	t.Parallel()

	reg := apiroute.NewRegistry()
	reg.Declare("h", apiroute.Get("/old", "old"))
	d := reg.Declare("h", apiroute.Put("/new", "new"))

	assert.Equal(t, http.MethodPut, d.Method)
	assert.Equal(t, "/new", d.Path)
	assert.Equal(t, "new", d.Summary)
}

func TestDeclare_Use_accumulates_in_order(t *testing.T) {
	t.Parallel()

	var seen []string
	reg := apiroute.NewRegistry()
	reg.Declare("h", apiroute.Use(tagMiddleware("first", &seen), tagMiddleware("second", &seen)))
	d := reg.Declare("h", apiroute.Use(tagMiddleware("third", &seen)))

	require.Len(t, d.Middlewares, 3)

	h := apiroute.Chain(d.Middlewares...)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(nil, nil)

	assert.Equal(t, []string{"first", "second", "third"}, seen)
}

func TestDeclare_validation_schemas(t *testing.T) {
	t.Parallel()

	body := schema.New("BodyDto")
	query := schema.New("QueryDto")
	params := schema.New("ParamsDto")
	replacement := schema.New("OtherBodyDto")

	reg := apiroute.NewRegistry()
	d := reg.Declare("h",
		apiroute.ValidateParams(params),
		apiroute.ValidateBody(body),
		apiroute.ValidateQuery(query),
	)

	assert.Equal(t, "BodyDto", d.BodySchema)
	assert.Equal(t, "QueryDto", d.QuerySchema)
	assert.Equal(t, "ParamsDto", d.ParamsSchema)
	assert.Equal(t, []*schema.Schema{params, body, query}, d.Schemas())

	reg.Declare("h", apiroute.ValidateBody(replacement))
	assert.Equal(t, "OtherBodyDto", d.BodySchema)
	assert.Equal(t, []*schema.Schema{params, replacement, query}, d.Schemas())
}

func TestToOpenAPIPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path       string
		want       string
		wantParams []string
	}{
		"single placeholder": {
			path:       "/students/:id",
			want:       "/students/{id}",
			wantParams: []string{"id"},
		},
		"nested placeholders": {
			path:       "/students/:id/courses/:courseId",
			want:       "/students/{id}/courses/{courseId}",
			wantParams: []string{"id", "courseId"},
		},
		"no placeholders": {
			path: "/students",
			want: "/students",
		},
		"root": {
			path: "/",
			want: "/",
		},
		"colon inside segment untouched": {
			path: "/time/12:30",
			want: "/time/12:30",
		},
		"placeholder with suffix untouched": {
			path: "/files/:name.json",
			want: "/files/:name.json",
		},
		"adjacent placeholders": {
			path:       "/:org/:repo",
			want:       "/{org}/{repo}",
			wantParams: []string{"org", "repo"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, apiroute.ToOpenAPIPath(tc.path))
			assert.Equal(t, tc.wantParams, apiroute.PathParams(tc.path))
		})
	}
}
