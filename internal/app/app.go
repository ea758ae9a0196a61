// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terrascope/gridcrs/internal/adapters/httpapi"
	"github.com/terrascope/gridcrs/internal/adapters/index"
	"github.com/terrascope/gridcrs/internal/adapters/metrics"
	"github.com/terrascope/gridcrs/internal/adapters/netcdf"
	"github.com/terrascope/gridcrs/internal/adapters/storage"
	"github.com/terrascope/gridcrs/internal/adapters/tlscert"
	"github.com/terrascope/gridcrs/internal/adapters/watcher"
	"github.com/terrascope/gridcrs/internal/application"
	"github.com/terrascope/gridcrs/internal/config"
	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Fetchers      []output.Fetcher
	Index         output.DatasetIndex
	Describer     *application.Describer
	Catalog       *application.Catalog
	SyncService   *application.SyncService
	HealthService *application.HealthService
	HTTPServer    *httpapi.Server
	TLSServer     *tlscert.Server
	Watcher       *watcher.Watcher
	Metrics       *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	var metricsCollector output.MetricsCollector = &output.NoOpMetrics{}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector("gridcrs")
		metricsCollector = app.Metrics
	}

	fetchers, err := initFetchers(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	app.Fetchers = fetchers

	if cfg.Catalog.IndexPath != "" {
		idx, err := index.New(cfg.Catalog.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("opening dataset index: %w", err)
		}
		app.Index = idx
	}

	app.Describer = application.NewDescriber(
		fetchers,
		netcdf.NewSource(logger),
		domain.NewComposer(logger),
		metricsCollector,
		logger,
		cfg.Storage.CacheDir,
	)

	app.Catalog = application.NewCatalog(
		app.Describer,
		fetchers[0],
		app.Index,
		metricsCollector,
		logger,
		cfg.Storage.DataURI(),
		cfg.Catalog.CRSCacheSize,
	)

	app.HealthService = application.NewHealthService(app.Catalog, app.Index != nil)

	// Only local storage can be watched; remote locations rely on the
	// periodic sync.
	var dirWatcher application.DirWatcher
	if cfg.Storage.Type == "local" {
		w, err := watcher.New(
			watcher.Config{Paths: []string{cfg.Storage.LocalPath}},
			app.handleFileEvent,
			logger,
		)
		if err != nil {
			logger.Warn("failed to initialize file watcher", "error", err)
		} else {
			app.Watcher = w
			dirWatcher = w
		}
	}

	app.SyncService = application.NewSyncService(
		app.Catalog,
		dirWatcher,
		cfg.Catalog.SyncInterval,
		logger,
	)

	app.HTTPServer = httpapi.NewServer(
		cfg.Server,
		app.Catalog,
		app.HealthService,
		app.SyncService,
		logger,
	)

	if cfg.Metrics.Enabled {
		app.HTTPServer.Use(app.Metrics.Middleware)
		app.HTTPServer.Mount(cfg.Metrics.Path, metrics.Handler())
	}

	if cfg.TLS.Enabled {
		tlsServer, err := tlscert.NewServer(cfg.TLS, app.HTTPServer.Router(), logger)
		if err != nil {
			return nil, fmt.Errorf("initializing TLS: %w", err)
		}
		app.TLSServer = tlsServer
	}

	return app, nil
}

// Start restores the catalog, runs an initial sync and serves the API.
// It blocks until the server stops.
func (a *App) Start(ctx context.Context) error {
	if a.Index != nil {
		if err := a.Index.Init(ctx); err != nil {
			return fmt.Errorf("initializing dataset index: %w", err)
		}
		if err := a.Catalog.Restore(ctx); err != nil {
			a.Logger.Warn("failed to restore catalog from index", "error", err)
		}
	}

	if err := a.SyncService.Rescan(ctx); err != nil {
		a.Logger.Warn("initial sync failed", "error", err)
	}

	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			a.Logger.Warn("failed to start file watcher", "error", err)
		}
	}

	a.SyncService.Start(ctx)

	if a.Config.TLS.Enabled && a.TLSServer != nil {
		return a.TLSServer.ListenAndServe(a.Config.Server.Address())
	}
	return a.HTTPServer.Start()
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	a.SyncService.Stop()

	if a.Watcher != nil {
		_ = a.Watcher.Stop()
	}

	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", "error", err)
	}

	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			a.Logger.Error("dataset index close error", "error", err)
		}
	}

	return nil
}

// handleFileEvent keeps the catalog aligned with filesystem changes in
// the data directory.
func (a *App) handleFileEvent(ctx context.Context, event watcher.Event) error {
	a.Logger.Info("file event", "path", event.Path, "operation", event.Operation.String())

	switch event.Operation {
	case watcher.OpCreate, watcher.OpModify:
		return a.Catalog.Register(ctx, event.Path)

	case watcher.OpDelete:
		id := application.DeriveDatasetID(event.Path)
		if err := a.Catalog.Unregister(ctx, id); err != nil {
			a.Logger.Warn("failed to unregister deleted dataset", "id", id, "error", err)
		}
		return nil
	}

	return nil
}

// initFetchers builds the fetcher chain for the configured storage type.
// The type-specific fetcher resolves the data location; the local fetcher
// serves as fallback so plain file paths always resolve.
func initFetchers(ctx context.Context, cfg config.StorageConfig) ([]output.Fetcher, error) {
	local := storage.NewLocalFetcher()

	switch cfg.Type {
	case "local":
		return []output.Fetcher{local}, nil

	case "s3":
		s3, err := storage.NewS3Fetcher(ctx, storage.S3Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return []output.Fetcher{s3, local}, nil

	case "azure":
		az, err := storage.NewAzureFetcher(storage.AzureConfig{
			AccountName:      cfg.Azure.AccountName,
			AccountKey:       cfg.Azure.AccountKey,
			ConnectionString: cfg.Azure.ConnectionString,
		})
		if err != nil {
			return nil, err
		}
		return []output.Fetcher{az, local}, nil

	case "http":
		h := storage.NewHTTPFetcher(storage.HTTPConfig{
			IndexFile: cfg.HTTP.IndexFile,
			Timeout:   cfg.HTTP.Timeout,
			Username:  cfg.HTTP.Username,
			Password:  cfg.HTTP.Password,
		})
		return []output.Fetcher{h, local}, nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
