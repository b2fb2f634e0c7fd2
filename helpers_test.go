package apiroute_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute"
	"github.com/bjaus/apiroute/apitest"
)

// mount binds reg to a fresh chi router and starts a test server.
func mount(t *testing.T, reg *apiroute.Registry, hs apiroute.Handlers, opts ...apiroute.BindOption) *apitest.Client {
	t.Helper()

	r := chi.NewRouter()
	_, err := apiroute.Bind(r, reg, []apiroute.Controller{controllerOf(hs)}, opts...)
	require.NoError(t, err)
	return apitest.NewClient(t, r)
}

func controllerOf(hs apiroute.Handlers) apiroute.Controller {
	return apiroute.ControllerFunc(func() apiroute.Handlers { return hs })
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
