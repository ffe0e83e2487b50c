package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/academy-frames/internal/observability"
	"github.com/jonathan/academy-frames/internal/pipeline"
	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <module.json|modules.json>...",
	Short: "Check module JSON against its shape and schema",
	Long: `Validates module files. The kind comes from --kind, or from file names written by
extract (<NN>_<kind>.json). A modules.json file is checked frame by frame.

With --schema, files are checked against that schema file instead of the embedded
ones, which is useful while editing a schema.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateKind   string
	validateSchema string
)

// errInvalidModules is returned when any checked module does not conform.
var errInvalidModules = errors.New("validation failed")

var moduleFilePattern = regexp.MustCompile(`^\d+_([a-z0-9_]+)\.json$`)

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "", "Module kind (inferred from the file name when omitted)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Validate against this schema file instead of the embedded schemas")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	printer := observability.NewPrinter(os.Stdout)
	invalid := 0

	for _, path := range args {
		var checks []check
		var err error
		if validateSchema != "" {
			checks, err = checkAgainstSchema(validateSchema, path)
		} else {
			checks, err = checkFile(path, validateKind)
		}
		if err != nil {
			return err
		}
		for _, c := range checks {
			printer.PrintValidation(c.kind, c.err)
			if c.err != nil {
				invalid++
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d invalid modules", errInvalidModules, invalid)
	}
	return nil
}

type check struct {
	kind types.Kind
	err  error
}

func checkFile(path, kindFlag string) ([]check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if filepath.Base(path) == pipeline.ModulesFile && kindFlag == "" {
		var frames []struct {
			Kind   types.Kind      `json:"kind"`
			Module json.RawMessage `json:"module"`
		}
		if err := json.Unmarshal(data, &frames); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		checks := make([]check, 0, len(frames))
		for _, f := range frames {
			checks = append(checks, check{kind: f.Kind, err: checkModule(f.Kind, f.Module)})
		}
		return checks, nil
	}

	kind, err := kindFor(path, kindFlag)
	if err != nil {
		return nil, err
	}
	return []check{{kind: kind, err: checkModule(kind, data)}}, nil
}

func kindFor(path, kindFlag string) (types.Kind, error) {
	if kindFlag != "" {
		return types.ParseKind(kindFlag)
	}
	m := moduleFilePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", fmt.Errorf("cannot infer the kind of %s; pass --kind", path)
	}
	return types.ParseKind(m[1])
}

// checkAgainstSchema validates a file with an on-disk schema. Relative schema
// paths are also looked up from the parent directories.
func checkAgainstSchema(schemaPath, path string) ([]check, error) {
	if resolved := schemas.ResolveSchemaPath(schemaPath); resolved != "" {
		schemaPath = resolved
	}
	kind := types.Kind(strings.TrimSuffix(filepath.Base(schemaPath), ".schema.json"))

	err := schemas.ValidateJSON(schemaPath, path)
	var schemaErr *schemas.ValidationError
	if err != nil && !errors.As(err, &schemaErr) {
		return nil, err
	}
	return []check{{kind: kind, err: err}}, nil
}

// checkModule reports schema problems first, then shape problems.
func checkModule(kind types.Kind, data []byte) error {
	if _, err := types.ParseKind(string(kind)); err != nil {
		return err
	}
	if err := schemas.ValidateModule(string(kind), data); err != nil {
		return err
	}
	_, err := types.DecodeModule(kind, data)
	return err
}
