package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/lmfeatures/features"
	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/ctxlog"
	"github.com/vk/lmfeatures/internal/registry"
)

// App encapsulates the loaded catalog, its registry, and the converter that
// binds raw records to the registered Go types.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	catalog   *config.Model
	converter config.Converter
}

// NewApp is the constructor for the main application. It loads the
// declarations, registers the compiled feature classes, and validates that
// the two sides agree. A failure here is a fatal startup error and panics;
// entrypoints recover it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var (
		catalog   *config.Model
		converter config.Converter
		err       error
	)
	if appConfig.ManifestsPath != "" {
		catalog, converter, err = loader.Load(ctx, appConfig.ManifestsPath)
	} else {
		logger.Debug("No manifests path configured, using the embedded catalog.")
		catalog, converter, err = loader.LoadSources(ctx, features.Manifests())
	}
	if err != nil {
		panic(fmt.Errorf("failed to load catalog: %w", err))
	}
	logger.Debug("Declarations loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = features.Modules()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All feature-class packages registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(catalog)

	// A mismatch between manifests and Go code is a programmer error.
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		catalog:   catalog,
		converter: converter,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns the loaded declaration model. This is primarily for testing.
func (a *App) Catalog() *config.Model {
	return a.catalog
}
