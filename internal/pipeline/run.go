// Package pipeline turns Figma documents into validated content modules, written to disk and optionally stored.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/academy-frames/internal/db"
	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/frames"
	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

// DefaultConcurrency bounds how many documents are processed at once.
const DefaultConcurrency = 4

// ModulesFile is the per-source file listing every extracted frame.
const ModulesFile = "modules.json"

// Stage names reported through ProgressEvent.
const (
	StageLoad    = "load"
	StageExtract = "extract"
	StageWrite   = "write"
	StagePersist = "persist"
)

// ErrFramesFailed is returned in strict mode when any frame fails.
var ErrFramesFailed = errors.New("frames failed extraction or validation")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage    string `json:"stage"`
	Source   string `json:"source"`
	Message  string `json:"message"`
	ExportID string `json:"export_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It may be
// called from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Store persists exports. *db.DB implements it.
type Store interface {
	CreateExport(ctx context.Context, source string) (uuid.UUID, error)
	SaveModules(ctx context.Context, exportID uuid.UUID, modules []db.ModuleInput) error
	CompleteExport(ctx context.Context, exportID uuid.UUID, summary db.ExportSummary) error
}

// Options holds configuration for running the pipeline
type Options struct {
	// Sources are Figma file keys or paths to exported file JSON.
	Sources []string
	// Pages restricts extraction to the named canvases.
	Pages       []string
	OutputDir   string
	Concurrency int
	Strict      bool

	Fetcher     figma.Source
	FileOptions figma.FileOptions
	Store       Store
	Logger      zerolog.Logger
	OnProgress  ProgressCallback
}

// Skip records a frame that maps to no module kind.
type Skip struct {
	Frame  string `json:"frame"`
	NodeID string `json:"node_id"`
	Reason string `json:"reason"`
}

// Failure records a frame, or a whole source, that could not be converted.
type Failure struct {
	Frame  string `json:"frame,omitempty"`
	NodeID string `json:"node_id,omitempty"`
	Error  string `json:"error"`
	Err    error  `json:"-"`
}

// SourceResult is the outcome for one document.
type SourceResult struct {
	Source       string         `json:"source"`
	DocumentName string         `json:"document_name,omitempty"`
	Version      string         `json:"version,omitempty"`
	ExportID     *uuid.UUID     `json:"export_id,omitempty"`
	OutputDir    string         `json:"output_dir,omitempty"`
	Frames       []*types.Frame `json:"frames"`
	Skipped      []Skip         `json:"skipped"`
	Failures     []Failure      `json:"failures"`
	Duration     time.Duration  `json:"duration_ns"`
}

// Result is the outcome of a pipeline run, one entry per source in input order.
type Result struct {
	Sources []*SourceResult `json:"sources"`
}

// FrameCount returns the number of modules extracted across all sources.
func (r *Result) FrameCount() int {
	n := 0
	for _, s := range r.Sources {
		n += len(s.Frames)
	}
	return n
}

// SkippedCount returns the number of unsupported frames across all sources.
func (r *Result) SkippedCount() int {
	n := 0
	for _, s := range r.Sources {
		n += len(s.Skipped)
	}
	return n
}

// Failures returns every failure across all sources.
func (r *Result) Failures() []Failure {
	var out []Failure
	for _, s := range r.Sources {
		out = append(out, s.Failures...)
	}
	return out
}

func emitProgress(opts *Options, stage, source, message string, exportID uuid.UUID) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{Stage: stage, Source: source, Message: message}
	if exportID != uuid.Nil {
		event.ExportID = exportID.String()
	}
	opts.OnProgress(event)
}

// Run processes every source concurrently. Frames keep document order
// within a source. Without Strict, per-frame failures are reported in the
// result rather than returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Sources) == 0 {
		return nil, errors.New("no sources given")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	extractor := frames.NewExtractor()
	result := &Result{Sources: make([]*SourceResult, len(opts.Sources))}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	names := outputNames(opts.Sources)
	for i, source := range opts.Sources {
		g.Go(func() error {
			sr, err := runSource(gCtx, &opts, extractor, source, names[i])
			// Each goroutine owns its slot.
			result.Sources[i] = sr
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func runSource(ctx context.Context, opts *Options, extractor *frames.Extractor, source, outputName string) (*SourceResult, error) {
	start := time.Now()
	logger := opts.Logger.With().Str("source", source).Logger()
	sr := &SourceResult{
		Source:   source,
		Frames:   []*types.Frame{},
		Skipped:  []Skip{},
		Failures: []Failure{},
	}

	exportID := uuid.Nil
	if opts.Store != nil {
		id, err := opts.Store.CreateExport(ctx, source)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to record export; continuing without persistence")
		} else {
			exportID = id
			sr.ExportID = &id
		}
	}

	// aborted is set when the source stops before its frames are written or stored.
	var aborted error
	defer func() {
		if sr.Duration == 0 {
			sr.Duration = time.Since(start)
		}
		finishExport(ctx, opts, sr, exportID, aborted, logger)
	}()

	emitProgress(opts, StageLoad, source, "loading document", exportID)
	doc, err := loadDocument(ctx, opts, source)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load document")
		sr.Failures = append(sr.Failures, Failure{Error: err.Error(), Err: err})
		if opts.Strict {
			return sr, fmt.Errorf("source %s: %w", source, err)
		}
		return sr, nil
	}
	sr.DocumentName = doc.Name
	sr.Version = doc.Version

	nodes := doc.Frames(opts.Pages...)
	logger.Info().Str("document", doc.Name).Int("frames", len(nodes)).Msg("document loaded")
	emitProgress(opts, StageExtract, source, fmt.Sprintf("extracting %d frames", len(nodes)), exportID)

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			aborted = err
			logger.Warn().Err(err).Msg("source cancelled")
			return sr, err
		}
		frame, err := convert(extractor, node)
		switch {
		case errors.Is(err, frames.ErrUnsupportedFrame):
			sr.Skipped = append(sr.Skipped, Skip{Frame: node.Name, NodeID: node.ID, Reason: "unsupported frame name"})
			logger.Debug().Str("frame", node.Name).Msg("skipping unsupported frame")
		case err != nil:
			sr.Failures = append(sr.Failures, Failure{Frame: node.Name, NodeID: node.ID, Error: err.Error(), Err: err})
			logger.Warn().Err(err).Str("frame", node.Name).Msg("frame failed")
		default:
			sr.Frames = append(sr.Frames, frame)
		}
	}

	if opts.OutputDir != "" {
		emitProgress(opts, StageWrite, source, "writing modules", exportID)
		dir, err := writeOutput(filepath.Join(opts.OutputDir, outputName), sr.Frames)
		if err != nil {
			aborted = err
			logger.Error().Err(err).Msg("failed to write modules")
			return sr, fmt.Errorf("source %s: %w", source, err)
		}
		sr.OutputDir = dir
	}

	if exportID != uuid.Nil {
		emitProgress(opts, StagePersist, source, "storing modules", exportID)
		if err := opts.Store.SaveModules(ctx, exportID, moduleInputs(sr.Frames)); err != nil {
			logger.Warn().Err(err).Msg("failed to store modules")
			sr.Failures = append(sr.Failures, Failure{Error: err.Error(), Err: err})
		}
	}

	sr.Duration = time.Since(start)
	logger.Info().
		Int("modules", len(sr.Frames)).
		Int("skipped", len(sr.Skipped)).
		Int("failures", len(sr.Failures)).
		Dur("duration", sr.Duration).
		Msg("source processed")

	if opts.Strict && len(sr.Failures) > 0 {
		return sr, fmt.Errorf("source %s: %d %w", source, len(sr.Failures), ErrFramesFailed)
	}
	return sr, nil
}

// convert extracts a frame and checks it against both the Go shape and the
// embedded JSON Schema.
func convert(extractor *frames.Extractor, node *figma.Node) (*types.Frame, error) {
	frame, err := extractor.Extract(node)
	if err != nil {
		return nil, err
	}
	if err := frame.Module.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(frame.Module)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s module: %w", frame.Kind, err)
	}
	if err := schemas.ValidateModule(string(frame.Kind), data); err != nil {
		return nil, err
	}
	return frame, nil
}

// finishExport closes the export row. An aborted source is always recorded
// as failed, whatever it extracted before stopping.
func finishExport(ctx context.Context, opts *Options, sr *SourceResult, exportID uuid.UUID, aborted error, logger zerolog.Logger) {
	if exportID == uuid.Nil {
		return
	}
	summary := db.ExportSummary{
		Status:       db.ExportStatusCompleted,
		DocumentName: sr.DocumentName,
		FrameCount:   len(sr.Frames),
		SkippedCount: len(sr.Skipped),
		FailureCount: len(sr.Failures),
	}
	switch {
	case aborted != nil:
		summary.Status = db.ExportStatusFailed
		summary.ErrorMessage = aborted.Error()
	case len(sr.Frames) == 0 && len(sr.Failures) > 0:
		summary.Status = db.ExportStatusFailed
		summary.ErrorMessage = sr.Failures[0].Error
	}
	// The run context may already be cancelled; the outcome should still be recorded.
	ctx = context.WithoutCancel(ctx)
	if err := opts.Store.CompleteExport(ctx, exportID, summary); err != nil {
		logger.Warn().Err(err).Msg("failed to complete export")
	}
}

func moduleInputs(extracted []*types.Frame) []db.ModuleInput {
	inputs := make([]db.ModuleInput, 0, len(extracted))
	for i, f := range extracted {
		data, err := json.Marshal(f.Module)
		if err != nil {
			continue
		}
		inputs = append(inputs, db.ModuleInput{
			Position:  i + 1,
			NodeID:    f.NodeID,
			FrameName: f.Name,
			Kind:      string(f.Kind),
			Content:   data,
		})
	}
	return inputs
}

// IsLocalSource reports whether a source names an exported JSON file rather
// than a Figma file key.
func IsLocalSource(source string) bool {
	return strings.HasSuffix(strings.ToLower(source), ".json") || strings.ContainsRune(source, os.PathSeparator)
}

func loadDocument(ctx context.Context, opts *Options, source string) (*figma.Document, error) {
	if IsLocalSource(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer func() { _ = f.Close() }()
		return figma.ParseDocument(f)
	}
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("no Figma client configured for file key %q", source)
	}
	return figma.FetchDocument(ctx, opts.Fetcher, source, opts.FileOptions)
}

var unsafeDirChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// OutputName is the directory name used for a source's files.
func OutputName(source string) string {
	name := source
	if IsLocalSource(source) {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	name = strings.Trim(unsafeDirChars.ReplaceAllString(name, "_"), "_.")
	if name == "" {
		return "document"
	}
	return name
}

// outputNames gives every source its own directory. A name already taken,
// ignoring case, gets the source's 1-based position appended.
func outputNames(sources []string) []string {
	names := make([]string, len(sources))
	taken := make(map[string]bool, len(sources))
	for i, source := range sources {
		name := OutputName(source)
		for taken[strings.ToLower(name)] {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		taken[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// ModuleFileName is the file a frame's module is written to.
func ModuleFileName(position int, kind types.Kind) string {
	return fmt.Sprintf("%02d_%s.json", position, kind)
}

var moduleFilePattern = regexp.MustCompile(`^\d{2,}_[a-z0-9_]+\.json$`)

func writeOutput(dir string, extracted []*types.Frame) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := removeModuleFiles(dir); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(dir, ModulesFile), extracted); err != nil {
		return "", err
	}
	for i, f := range extracted {
		if err := writeJSON(filepath.Join(dir, ModuleFileName(i+1, f.Kind)), f.Module); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// removeModuleFiles clears module files left by an earlier run so a shorter
// document does not leave stale positions behind. Other files are kept.
func removeModuleFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !moduleFilePattern.MatchString(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove stale %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
