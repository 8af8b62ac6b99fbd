package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/internal/transport"
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee"
)

// ErrNoService is returned by operations that need the evaluation service
// when no base URL is configured.
var ErrNoService = errors.New("no service configured: set base_url")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger    *slog.Logger
	config    *Config
	registry  *ee.Registry
	transport *transport.HTTP
	client    *ee.Client
}

// NewApp builds the registry and, when a service is configured, the
// transport and client. Logs go to logW.
//
// The function catalog comes from cfg.CatalogPath when set, from the service
// when cfg.BaseURL is set, and from the builtin manifest otherwise.
func NewApp(ctx context.Context, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	a := &App{logger: logger, config: cfg}

	if cfg.BaseURL != "" {
		tr, err := transport.New(transport.Config{
			BaseURL: cfg.BaseURL,
			Project: cfg.Project,
			Token:   cfg.Token,
			Timeout: cfg.Timeout,
			Retries: cfg.Retries,
		})
		if err != nil {
			return nil, err
		}
		a.transport = tr
		a.client = ee.NewClient(tr, ee.WithEncoding(cfg.EncodingValue()))
		logger.Debug("Transport configured.", "base_url", cfg.BaseURL, "project", cfg.Project)
	}

	reg, err := a.loadRegistry(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.registry = reg
	return a, nil
}

func (a *App) loadRegistry(ctx context.Context) (*ee.Registry, error) {
	opts := []ee.Option{ee.WithLogger(a.logger)}

	switch {
	case a.config.CatalogPath != "":
		a.logger.Debug("Loading catalog from disk.", "path", a.config.CatalogPath)
		cat, err := catalog.Load(ctx, a.config.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return ee.NewRegistry(cat, opts...)

	case a.transport != nil:
		a.logger.Debug("Fetching catalog from service.")
		return ee.Initialize(ctx, a.transport, opts...)
	}

	a.logger.Debug("Using builtin catalog.")
	cat, err := catalog.Builtin(ctx)
	if err != nil {
		return nil, err
	}
	return ee.NewRegistry(cat, opts...)
}

// Context attaches the application's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Registry returns the application's registry.
func (a *App) Registry() *ee.Registry {
	return a.registry
}

// Config returns the validated configuration.
func (a *App) Config() *Config {
	return a.config
}

// Close releases the transport, if any.
func (a *App) Close() error {
	if a.transport == nil {
		return nil
	}
	return a.transport.Close()
}
