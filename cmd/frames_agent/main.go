// Package main provides the frames_agent CLI, which turns Figma course
// designs into validated content modules and serves them over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frames_agent",
	Short: "Figma frames to content modules",
	Long: `frames_agent reads Figma course designs, converts every recognised frame into a
typed content module, validates it against its JSON Schema and writes or stores the result.

Settings come from --config (JSON or YAML), then flags, then the environment
(FIGMA_API_KEY, DATABASE_URL, LOG_LEVEL). A .env file in the working directory is loaded first.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootLogLevel   string
	rootPretty     bool
	rootDBURL      string
	rootFigmaToken string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootPretty, "pretty", false, "Human-readable log output")
	rootCmd.PersistentFlags().StringVar(&rootDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&rootFigmaToken, "figma-token", "", "Figma access token (defaults to FIGMA_API_KEY)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
