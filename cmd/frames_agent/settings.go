package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/academy-frames/internal/config"
	"github.com/jonathan/academy-frames/internal/db"
	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/observability"
	"github.com/jonathan/academy-frames/internal/pipeline"
)

// loadSettings resolves the effective configuration: config file, then
// explicitly set flags, then the environment, then defaults.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDBURL
	}
	if flags.Changed("figma-token") {
		cfg.FigmaAPIKey = rootFigmaToken
	}
	if f := flags.Lookup("pages"); f != nil && f.Changed {
		cfg.Pages, _ = flags.GetStringSlice("pages")
	}
	if f := flags.Lookup("out"); f != nil && f.Changed {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if f := flags.Lookup("strict"); f != nil && f.Changed {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if f := flags.Lookup("depth"); f != nil && f.Changed {
		cfg.Depth, _ = flags.GetInt("depth")
	}
	if f := flags.Lookup("cache-ttl"); f != nil && f.Changed {
		cfg.CacheTTL, _ = flags.GetString("cache-ttl")
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		cfg.Port, _ = flags.GetInt("port")
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Config{
		OutputDir: config.DefaultOutputDir,
		LogLevel:  config.DefaultLogLevel,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (zerolog.Logger, error) {
	return observability.NewLogger(os.Stderr, cfg.LogLevel, rootPretty)
}

// figmaAccess bundles the document source with the database backing its
// cache, if any. Callers must call close.
type figmaAccess struct {
	source      figma.Source
	fileOptions figma.FileOptions
	database    *db.DB
}

func (a *figmaAccess) close() {
	if a.database != nil {
		a.database.Close()
	}
}

// openFigma builds the Figma source. When a database is configured the raw
// file JSON is cached there; a cache TTL of "0" or --no-cache bypasses it.
func openFigma(ctx context.Context, cfg config.Config, logger zerolog.Logger, noCache bool) (*figmaAccess, error) {
	opts := figma.DefaultOptions(cfg.FigmaAPIKey)
	if cfg.FigmaBaseURL != "" {
		opts.BaseURL = cfg.FigmaBaseURL
	}
	access := &figmaAccess{
		source:      figma.NewClient(opts),
		fileOptions: figma.FileOptions{Depth: cfg.Depth},
	}

	if cfg.DatabaseURL == "" {
		return access, nil
	}
	database, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	access.database = database

	ttl, err := cfg.CacheTTLDuration()
	if err != nil {
		access.close()
		return nil, err
	}
	if ttl > 0 {
		access.source = figma.NewCachedClient(access.source, database, &figma.CachedClientConfig{
			CacheTTL:  ttl,
			SkipCache: noCache,
			Logger:    logger,
		})
	}
	return access, nil
}

func connectDB(ctx context.Context, url string) (*db.DB, error) {
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// loadDocument reads a local export or fetches a file key.
func loadDocument(ctx context.Context, access *figmaAccess, source string) (*figma.Document, error) {
	if pipeline.IsLocalSource(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer func() { _ = f.Close() }()
		return figma.ParseDocument(f)
	}
	return figma.FetchDocument(ctx, access.source, source, access.fileOptions)
}
