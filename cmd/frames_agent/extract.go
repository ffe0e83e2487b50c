package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/academy-frames/internal/observability"
	"github.com/jonathan/academy-frames/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file-key|export.json>...",
	Short: "Convert documents into content modules",
	Long: `Runs the extraction pipeline over every source: loads the document, converts each
recognised frame into a module, validates it and writes <out>/<source>/modules.json plus one
<NN>_<kind>.json per frame. With a database configured the export is stored as well.

Frames that fail are reported; with --strict any failure makes the command fail.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var (
	extractNoStore bool
	extractNoCache bool
	extractQuiet   bool
)

func init() {
	extractCmd.Flags().StringSlice("pages", nil, "Only extract frames on these pages")
	extractCmd.Flags().StringP("out", "o", "", "Output directory (default \"out\")")
	extractCmd.Flags().Int("concurrency", 0, "Documents processed at once")
	extractCmd.Flags().Bool("strict", false, "Fail when any frame fails")
	extractCmd.Flags().Int("depth", 0, "Tree depth to fetch from Figma (0 for the whole file)")
	extractCmd.Flags().String("cache-ttl", "", "Reuse cached files younger than this (e.g. 30m, 0 disables)")
	extractCmd.Flags().BoolVar(&extractNoCache, "no-cache", false, "Always fetch from Figma")
	extractCmd.Flags().BoolVar(&extractNoStore, "no-store", false, "Do not record the export in the database")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "Do not print the result summary")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	access, err := openFigma(ctx, cfg, logger, extractNoCache)
	if err != nil {
		return err
	}
	defer access.close()

	opts := pipeline.Options{
		Sources:     args,
		Pages:       cfg.Pages,
		OutputDir:   cfg.OutputDir,
		Concurrency: cfg.Concurrency,
		Strict:      cfg.Strict,
		Fetcher:     access.source,
		FileOptions: access.fileOptions,
		Logger:      logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			logger.Debug().Str("stage", event.Stage).Str("source", event.Source).Msg(event.Message)
		},
	}
	if access.database != nil && !extractNoStore {
		opts.Store = access.database
	}

	result, runErr := pipeline.Run(ctx, opts)
	if result != nil && !extractQuiet {
		printer := observability.NewPrinter(os.Stdout)
		for _, sr := range result.Sources {
			printer.PrintSourceResult(sr)
		}
	}
	if runErr != nil {
		return fmt.Errorf("extraction failed: %w", runErr)
	}

	logger.Info().
		Int("sources", len(result.Sources)).
		Int("modules", result.FrameCount()).
		Int("skipped", result.SkippedCount()).
		Int("failures", len(result.Failures())).
		Msg("extraction finished")
	return nil
}
