package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	Title           string        `env:"API_TITLE" envDefault:"Sample API"`
	Version         string        `env:"API_VERSION" envDefault:"1.0.0"`
	SpecPath        string        `env:"SPEC_PATH" envDefault:"/openapi.json"`
	DocsPath        string        `env:"DOCS_PATH" envDefault:"/api-docs"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func loadConfig() (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("parse config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
