// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor a flag sets a value.
const (
	DefaultOutputDir   = "out"
	DefaultConcurrency = 4
	DefaultCacheTTL    = time.Hour
	DefaultLogLevel    = "info"
	DefaultPort        = 8080
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Figma
	FigmaAPIKey  string `json:"figma_api_key,omitempty" yaml:"figma_api_key,omitempty"`   // Personal access token
	FigmaBaseURL string `json:"figma_base_url,omitempty" yaml:"figma_base_url,omitempty"` // Override for the REST API root
	Depth        int    `json:"depth,omitempty" yaml:"depth,omitempty"`                   // Tree depth to fetch, 0 for all
	CacheTTL     string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`           // e.g. "30m"; "0" disables the cache

	// Extraction
	Pages       []string `json:"pages,omitempty" yaml:"pages,omitempty"`             // Only extract frames on these pages
	OutputDir   string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`   // Where module JSON is written
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Documents processed at once
	Strict      bool     `json:"strict,omitempty" yaml:"strict,omitempty"`           // Fail on the first bad frame

	// Runtime
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values such as sources are checked by the commands after merging.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("config error: 'depth' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if _, err := c.CacheTTLDuration(); err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level' %q", c.LogLevel)
		}
	}
	for _, p := range c.Pages {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config error: 'pages' must not contain empty names")
		}
	}
	return nil
}

// CacheTTLDuration parses CacheTTL, falling back to DefaultCacheTTL when unset.
func (c *Config) CacheTTLDuration() (time.Duration, error) {
	if c.CacheTTL == "" {
		return DefaultCacheTTL, nil
	}
	if c.CacheTTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'cache_ttl' %q: %w", c.CacheTTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.FigmaAPIKey == "" {
		result.FigmaAPIKey = defaults.FigmaAPIKey
	}
	if result.FigmaBaseURL == "" {
		result.FigmaBaseURL = defaults.FigmaBaseURL
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if len(result.Pages) == 0 {
		result.Pages = defaults.Pages
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	if result.Depth == 0 {
		result.Depth = defaults.Depth
	}
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = DefaultConcurrency
		}
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills secrets and connection strings from the environment when the
// file left them empty.
func (c *Config) ApplyEnv() {
	if c.FigmaAPIKey == "" {
		c.FigmaAPIKey = os.Getenv("FIGMA_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("LOG_LEVEL")
	}
}
