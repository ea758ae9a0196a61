// Package main provides the entry point for the gridcrs catalog service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/terrascope/gridcrs/internal/adapters/index"
	"github.com/terrascope/gridcrs/internal/adapters/netcdf"
	"github.com/terrascope/gridcrs/internal/adapters/storage"
	"github.com/terrascope/gridcrs/internal/app"
	"github.com/terrascope/gridcrs/internal/application"
	"github.com/terrascope/gridcrs/internal/config"
	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/input"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	cfgFile        string
	describeFormat string
	listFormat     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridcrs",
	Short: "gridcrs - netCDF coordinate reference system catalog",
	Long: `gridcrs reads netCDF datasets, classifies their coordinate system
axes and composes coordinate reference systems from them.

It serves a REST API over a dataset catalog that follows a data
location on local disk, AWS S3, Azure Blob Storage or HTTP.

Features:
  - Axis classification from CF and COARDS conventions
  - Geographic, projected, vertical and temporal CRS composition
  - Compound CRS assembly with grid-mapping support
  - Multiple storage backends (local, AWS S3, Azure, HTTP)
  - Hot-reload of the local data directory
  - TLS with automatic certificate management
  - Prometheus metrics`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("gridcrs %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Build Date: %s\n", buildDate)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the datasets registered in the catalog index",
	Long: `List prints the datasets recorded in the catalog index without
starting the service. The index path comes from the configuration.`,
	RunE: runList,
}

var describeCmd = &cobra.Command{
	Use:   "describe <uri>",
	Short: "Compose the reference systems of a single dataset",
	Long: `Describe opens one netCDF dataset, composes its coordinate
reference systems and prints the record without starting the service.
The URI may be a local path or an http(s) URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")

	// Server flags
	rootCmd.Flags().String("host", "0.0.0.0", "server host")
	rootCmd.Flags().Int("port", 8080, "server port")
	rootCmd.Flags().Bool("tls", false, "enable TLS")
	rootCmd.Flags().StringSlice("tls-domains", nil, "TLS domains")
	rootCmd.Flags().String("tls-email", "", "TLS email for Let's Encrypt")

	// Storage flags
	rootCmd.Flags().String("storage-type", "local", "storage type (local, s3, azure, http)")
	rootCmd.Flags().String("storage-path", "./data", "local storage path")

	// Catalog flags
	rootCmd.Flags().String("index-path", "./catalog.db", "dataset index path (empty disables persistence)")
	rootCmd.Flags().Duration("sync-interval", 15*time.Minute, "periodic sync interval")

	// CORS flags
	rootCmd.Flags().StringSlice("cors", nil, "allowed CORS origins (e.g., https://example.com,*.sub.domain.tld)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("server.host", rootCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("tls.enabled", rootCmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("tls.domains", rootCmd.Flags().Lookup("tls-domains"))
	_ = viper.BindPFlag("tls.email", rootCmd.Flags().Lookup("tls-email"))
	_ = viper.BindPFlag("storage.type", rootCmd.Flags().Lookup("storage-type"))
	_ = viper.BindPFlag("storage.local_path", rootCmd.Flags().Lookup("storage-path"))
	_ = viper.BindPFlag("catalog.index_path", rootCmd.Flags().Lookup("index-path"))
	_ = viper.BindPFlag("catalog.sync_interval", rootCmd.Flags().Lookup("sync-interval"))
	_ = viper.BindPFlag("server.cors.allowed_origins", rootCmd.Flags().Lookup("cors"))

	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "json", "output format (json, yaml)")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json, yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(listCmd)
}

func initConfig() {
	config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting gridcrs",
		"version", version,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage_type", cfg.Storage.Type,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", cfg.Server.Address())
		if err := application.Start(ctx); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		cancel()
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	logger.Info("shutting down server")
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Catalog.IndexPath == "" {
		return fmt.Errorf("catalog index is disabled; set catalog.index_path")
	}

	idx, err := index.New(cfg.Catalog.IndexPath)
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()
	if err := idx.Init(cmd.Context()); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	catalog := application.NewCatalog(
		nil,
		storage.NewLocalFetcher(),
		idx,
		&output.NoOpMetrics{},
		logger,
		cfg.Storage.DataURI(),
		cfg.Catalog.CRSCacheSize,
	)
	if err := catalog.Restore(cmd.Context()); err != nil {
		return err
	}

	var query input.CatalogQuery = catalog
	records, err := query.ListDatasets(cmd.Context())
	if err != nil {
		return err
	}

	out, err := formatDatasetList(records, listFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// formatDatasetList renders catalog records in the requested format.
// Records are sorted by ID so output is stable across runs.
func formatDatasetList(records []domain.DatasetRecord, format string) (string, error) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	switch format {
	case "json":
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil

	case "yaml":
		out, err := yaml.Marshal(records)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case "table":
		if len(records) == 0 {
			return "no datasets registered\n", nil
		}
		var b strings.Builder
		w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tCRS\tLOCATION")
		for i := range records {
			rec := &records[i]
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", rec.ID, rec.Status, rec.CRSCount(), rec.Location)
		}
		if err := w.Flush(); err != nil {
			return "", err
		}
		return b.String(), nil

	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func runDescribe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cacheDir, err := os.MkdirTemp("", "gridcrs-describe-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(cacheDir) }()

	describer := application.NewDescriber(
		[]output.Fetcher{
			storage.NewHTTPFetcher(storage.HTTPConfig{}),
			storage.NewLocalFetcher(),
		},
		netcdf.NewSource(logger),
		domain.NewComposer(logger),
		&output.NoOpMetrics{},
		logger,
		cacheDir,
	)

	rec, err := describer.Describe(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch describeFormat {
	case "yaml":
		out, err := yaml.Marshal(rec)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "json":
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown output format: %s", describeFormat)
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(time.Now().UTC().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
