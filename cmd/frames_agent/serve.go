package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/academy-frames/internal/config"
	"github.com/jonathan/academy-frames/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that validates modules and runs exports of Figma files.
Requires JWT_SECRET. Without DATABASE_URL the export endpoints answer 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().Int("concurrency", 0, "Documents processed at once per export")
	serveCmd.Flags().Int("depth", 0, "Tree depth to fetch from Figma (0 for the whole file)")
	serveCmd.Flags().String("cache-ttl", "", "Reuse cached files younger than this (e.g. 30m, 0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	access, err := openFigma(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer access.close()

	srvCfg := server.Config{
		Port:        cfg.Port,
		FileOptions: access.fileOptions,
		Concurrency: cfg.Concurrency,
		JWT:         jwtConfig,
		Logger:      logger,
	}
	if cfg.FigmaAPIKey != "" {
		srvCfg.Fetcher = access.source
	} else {
		logger.Warn().Msg("FIGMA_API_KEY is not set; exports are disabled")
	}
	if access.database != nil {
		srvCfg.Store = access.database
	} else {
		logger.Warn().Msg("DATABASE_URL is not set; export endpoints are disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
