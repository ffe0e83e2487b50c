package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/academy-frames/internal/config"
	"github.com/jonathan/academy-frames/internal/pipeline"
	"github.com/jonathan/academy-frames/internal/types"
)

var fixture = filepath.Join("..", "..", "internal", "pipeline", "testdata", "module_3.json")

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("FIGMA_API_KEY", "env-token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	rootConfigPath = writeFile(t, dir, "frames.yaml", `
pages: [Module 3]
concurrency: 2
output_dir: build
log_level: debug
`)
	t.Cleanup(func() { rootConfigPath = "" })

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("concurrency", 0, "")
	cmd.Flags().StringSlice("pages", nil, "")
	require.NoError(t, cmd.ParseFlags([]string{"--concurrency", "6"}))

	cfg, err := loadSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Concurrency, "flags win over the file")
	assert.Equal(t, []string{"Module 3"}, cfg.Pages)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "env-token", cfg.FigmaAPIKey)
	assert.Equal(t, config.DefaultPort, cfg.Port)
}

func TestLoadSettings_Invalid(t *testing.T) {
	rootConfigPath = writeFile(t, t.TempDir(), "frames.json", `{"cache_ttl": "soon"}`)
	t.Cleanup(func() { rootConfigPath = "" })

	_, err := loadSettings(&cobra.Command{Use: "test"})
	assert.Error(t, err)
}

func TestKindFor(t *testing.T) {
	kind, err := kindFor("out/module_3/02_quote.json", "")
	require.NoError(t, err)
	assert.Equal(t, types.KindQuote, kind)

	kind, err = kindFor("anything.json", "key_concepts")
	require.NoError(t, err)
	assert.Equal(t, types.KindKeyConcepts, kind)

	_, err = kindFor("anything.json", "")
	assert.Error(t, err)

	_, err = kindFor("07_slideshow.json", "")
	var unknown *types.UnknownKindError
	assert.ErrorAs(t, err, &unknown)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	good := writeFile(t, dir, "01_quote.json", `{"content":{"quote":"q","author":"a"}}`)
	checks, err := checkFile(good, "")
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.NoError(t, checks[0].err)

	bad := writeFile(t, dir, "02_text.json", `{"colorscheme":"sepia","content":{"texts":[]}}`)
	checks, err = checkFile(bad, "")
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Error(t, checks[0].err)

	modules := writeFile(t, dir, pipeline.ModulesFile, `[
  {"node_id":"1:1","name":"quote","kind":"quote","module":{"content":{"quote":"q","author":"a"}}},
  {"node_id":"1:2","name":"quote_2","kind":"quote","module":{"content":{"quote":"q"}}}
]`)
	checks, err = checkFile(modules, "")
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.NoError(t, checks[0].err)
	assert.Error(t, checks[1].err)

	_, err = checkFile(filepath.Join(dir, "missing.json"), "quote")
	assert.Error(t, err)
}

func TestExtractAndValidate(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	out := t.TempDir()

	rootCmd.SetArgs([]string{"extract", fixture, "--out", out, "--quiet"})
	require.NoError(t, rootCmd.Execute())

	dir := filepath.Join(out, "module_3")
	assert.FileExists(t, filepath.Join(dir, pipeline.ModulesFile))
	assert.FileExists(t, filepath.Join(dir, "01_m1.json"))
	assert.FileExists(t, filepath.Join(dir, "02_quote.json"))

	rootCmd.SetArgs([]string{"validate", filepath.Join(dir, "02_quote.json"), filepath.Join(dir, pipeline.ModulesFile)})
	assert.NoError(t, rootCmd.Execute())
}

func TestCheckAgainstSchema(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join("..", "..", "schemas", "quote.schema.json")

	good := writeFile(t, dir, "quote.json", `{"content":{"quote":"q","author":"a"}}`)
	checks, err := checkAgainstSchema(schema, good)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, types.KindQuote, checks[0].kind)
	assert.NoError(t, checks[0].err)

	bad := writeFile(t, dir, "bad.json", `{"content":{"quote":1,"author":"a"}}`)
	checks, err = checkAgainstSchema(schema, bad)
	require.NoError(t, err)
	assert.Error(t, checks[0].err)

	_, err = checkAgainstSchema(filepath.Join(dir, "none.schema.json"), good)
	assert.Error(t, err)
}
