// Command sample runs a small users API built with apiroute.
//
// Run:
//
//	go run ./cmd/sample
//
// Generate the OpenAPI document:
//
//	go run ./cmd/sample -spec                   # JSON to stdout
//	go run ./cmd/sample -spec -yaml -o api.yaml # YAML to a file
//
// Then explore:
//
//	GET    http://localhost:8080/openapi.json
//	GET    http://localhost:8080/api-docs
//	GET    http://localhost:8080/v1/users?role=admin&limit=10
//	POST   http://localhost:8080/v1/users
//	GET    http://localhost:8080/v1/users/{id}
//	PATCH  http://localhost:8080/v1/users/{id}
//	DELETE http://localhost:8080/v1/users/{id}
//
// Configuration is read from the environment (see Config) and an optional
// .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bjaus/apiroute"
)

func main() {
	specFlag := flag.Bool("spec", false, "Print the OpenAPI document and exit")
	yamlFlag := flag.Bool("yaml", false, "Write the document as YAML (requires -spec)")
	outFlag := flag.String("o", "", "Output file for the document (requires -spec)")
	flag.Parse()

	if err := run(*specFlag, *yamlFlag, *outFlag); err != nil {
		slog.Error("sample failed", "err", err)
		os.Exit(1)
	}
}

func run(specOnly, asYAML bool, outFile string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Keep stdout clean for the document.
	var logOut io.Writer = os.Stdout
	if specOnly {
		logOut = os.Stderr
	}
	logger := newLogger(logOut, cfg)
	slog.SetDefault(logger)

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	if specOnly {
		return writeSpec(app.spec, asYAML, outFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr, "spec", cfg.SpecPath, "docs", cfg.DocsPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

type app struct {
	handler http.Handler
	spec    *apiroute.OpenAPISpec
	users   *userController
}

// newApp declares the routes, binds them on a chi router and generates the
// document served next to them.
func newApp(cfg Config, logger *slog.Logger) (*app, error) {
	schemas, err := loadUserSchemas()
	if err != nil {
		return nil, err
	}

	reg := apiroute.NewRegistry()
	declareUsers(reg, schemas, audit(logger))

	users := newUserController()

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.CleanPath)
	r.Use(apiroute.RequestID())
	r.Use(apiroute.Logger(logger))
	r.Use(apiroute.Recovery())

	r.Route("/v1", func(v1 chi.Router) {
		_, err = apiroute.Bind(v1, reg, []apiroute.Controller{users}, apiroute.WithLogger(logger))
	})
	if err != nil {
		return nil, err
	}

	spec, err := apiroute.Generate(reg, schemas.catalogue,
		apiroute.WithTitle(cfg.Title),
		apiroute.WithVersion(cfg.Version),
		apiroute.WithTag("Users"),
		apiroute.WithServers(apiroute.Server{URL: "/v1"}),
	)
	if err != nil {
		return nil, err
	}

	apiroute.ServeSpec(r, cfg.SpecPath, spec)
	apiroute.ServeSpecYAML(r, strings.TrimSuffix(cfg.SpecPath, ".json")+".yaml", spec)
	apiroute.ServeDocs(r, cfg.DocsPath, cfg.SpecPath, apiroute.WithDocsTitle(cfg.Title))

	return &app{handler: r, spec: spec, users: users}, nil
}

// audit logs mutating requests before they are validated.
func audit(logger *slog.Logger) apiroute.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.InfoContext(r.Context(), "audit",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", apiroute.GetRequestID(r),
			)
			next.ServeHTTP(w, r)
		})
	}
}

func writeSpec(spec *apiroute.OpenAPISpec, asYAML bool, outFile string) error {
	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile) //nolint:gosec // user-provided CLI flag
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Error("failed to close output file", "err", err)
			}
		}()
		w = f
	}
	if asYAML {
		return apiroute.WriteSpecYAML(w, spec)
	}
	return apiroute.WriteSpec(w, spec)
}
