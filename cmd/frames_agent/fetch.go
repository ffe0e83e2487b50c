package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <file-key>",
	Short: "Download a Figma file as JSON",
	Long: `Fetches GET /v1/files/:key and writes the raw JSON, indented, to --out or stdout.
The saved file can be passed to tree, extract and the other commands in place of the key.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var (
	fetchOutput  string
	fetchIDs     []string
	fetchNoCache bool
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "out", "o", "", "Path to write the file JSON (default stdout)")
	fetchCmd.Flags().Int("depth", 0, "Tree depth to fetch (0 for the whole file)")
	fetchCmd.Flags().StringSliceVar(&fetchIDs, "ids", nil, "Only fetch these node IDs and their ancestors")
	fetchCmd.Flags().String("cache-ttl", "", "Reuse cached files younger than this (e.g. 30m, 0 disables)")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "Always fetch from Figma")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	access, err := openFigma(ctx, cfg, logger, fetchNoCache)
	if err != nil {
		return err
	}
	defer access.close()
	access.fileOptions.IDs = fetchIDs

	body, err := access.source.FileJSON(ctx, args[0], access.fileOptions)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return fmt.Errorf("figma returned invalid JSON: %w", err)
	}
	out.WriteByte('\n')

	if fetchOutput == "" {
		_, err = os.Stdout.Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(fetchOutput, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchOutput, err)
	}
	logger.Info().Str("file_key", args[0]).Str("path", fetchOutput).Int("bytes", out.Len()).Msg("file saved")
	return nil
}
