package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/academy-frames/internal/db"
	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/types"
)

const fixture = "testdata/module_3.json"

type fileSource struct {
	mu    sync.Mutex
	files map[string]string
	keys  []string
}

func (s *fileSource) FileJSON(_ context.Context, key string, _ figma.FileOptions) ([]byte, error) {
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()

	path, ok := s.files[key]
	if !ok {
		return nil, &figma.Error{URL: key, Message: "HTTP status 404: Not found", StatusCode: 404}
	}
	return os.ReadFile(path)
}

type recordingStore struct {
	mu        sync.Mutex
	created   []string
	saved     map[uuid.UUID][]db.ModuleInput
	completed map[uuid.UUID]db.ExportSummary
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		saved:     map[uuid.UUID][]db.ModuleInput{},
		completed: map[uuid.UUID]db.ExportSummary{},
	}
}

func (s *recordingStore) CreateExport(_ context.Context, source string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, source)
	return uuid.New(), nil
}

func (s *recordingStore) SaveModules(_ context.Context, exportID uuid.UUID, modules []db.ModuleInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[exportID] = modules
	return nil
}

func (s *recordingStore) CompleteExport(_ context.Context, exportID uuid.UUID, summary db.ExportSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[exportID] = summary
	return nil
}

func frameNames(fs []*types.Frame) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

func TestRun_LocalSource(t *testing.T) {
	out := t.TempDir()

	result, err := Run(context.Background(), Options{
		Sources:   []string{fixture},
		OutputDir: out,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	require.Len(t, result.Sources, 1)

	sr := result.Sources[0]
	assert.Equal(t, "Academy: Module 3", sr.DocumentName)
	assert.Equal(t, "5521", sr.Version)
	assert.Equal(t, []string{"m1_cover", "quote_large_with_name", "quote_old"}, frameNames(sr.Frames))
	require.Len(t, sr.Skipped, 1)
	assert.Equal(t, "storyboard_notes", sr.Skipped[0].Frame)
	require.Len(t, sr.Failures, 1)
	assert.Equal(t, "connection_back", sr.Failures[0].Frame)
	assert.Contains(t, sr.Failures[0].Error, "cta")
	assert.Equal(t, 3, result.FrameCount())
	assert.Equal(t, 1, result.SkippedCount())

	m1, ok := sr.Frames[0].Module.(*types.M1Module)
	require.True(t, ok)
	assert.Equal(t, "Data for development", m1.Content.Title)
	assert.Equal(t, "m3-l1", m1.Content.LessonID)

	dir := filepath.Join(out, "module_3")
	assert.Equal(t, dir, sr.OutputDir)

	data, err := os.ReadFile(filepath.Join(dir, ModulesFile))
	require.NoError(t, err)
	var written []types.Frame
	require.NoError(t, json.Unmarshal(data, &written))
	require.Len(t, written, 3)
	assert.Equal(t, types.KindQuote, written[1].Kind)

	data, err = os.ReadFile(filepath.Join(dir, "01_m1.json"))
	require.NoError(t, err)
	module, err := types.DecodeModule(types.KindM1, data)
	require.NoError(t, err)
	assert.Equal(t, m1, module)

	assert.FileExists(t, filepath.Join(dir, "02_quote.json"))
	assert.FileExists(t, filepath.Join(dir, "03_quote.json"))
}

func TestRun_PageFilter(t *testing.T) {
	result, err := Run(context.Background(), Options{
		Sources: []string{fixture},
		Pages:   []string{"Module 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1_cover", "quote_large_with_name"}, frameNames(result.Sources[0].Frames))
	assert.Empty(t, result.Sources[0].OutputDir)
}

func TestRun_Strict(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Sources: []string{fixture},
		Strict:  true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFramesFailed))
}

func TestRun_FileKeys(t *testing.T) {
	source := &fileSource{files: map[string]string{"KEY1": fixture, "KEY2": fixture}}

	result, err := Run(context.Background(), Options{
		Sources:     []string{"KEY1", "MISSING", "KEY2"},
		Fetcher:     source,
		Concurrency: 2,
	})
	require.NoError(t, err)
	require.Len(t, result.Sources, 3)

	assert.Equal(t, "KEY1", result.Sources[0].Source)
	assert.Equal(t, "MISSING", result.Sources[1].Source)
	assert.Equal(t, "KEY2", result.Sources[2].Source)
	assert.Len(t, result.Sources[0].Frames, 3)
	assert.Len(t, result.Sources[2].Frames, 3)

	missing := result.Sources[1]
	assert.Empty(t, missing.Frames)
	require.Len(t, missing.Failures, 1)
	var figmaErr *figma.Error
	assert.True(t, errors.As(missing.Failures[0].Err, &figmaErr))
	assert.Len(t, result.Failures(), 3)

	assert.ElementsMatch(t, []string{"KEY1", "MISSING", "KEY2"}, source.keys)
}

func TestRun_FileKeyWithoutFetcher(t *testing.T) {
	_, err := Run(context.Background(), Options{Sources: []string{"KEY1"}, Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Figma client configured")
}

func TestRun_NoSources(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	require.Error(t, err)
}

func TestRun_Store(t *testing.T) {
	store := newRecordingStore()

	result, err := Run(context.Background(), Options{
		Sources: []string{fixture},
		Store:   store,
	})
	require.NoError(t, err)

	sr := result.Sources[0]
	require.NotNil(t, sr.ExportID)
	assert.Equal(t, []string{fixture}, store.created)

	saved := store.saved[*sr.ExportID]
	require.Len(t, saved, 3)
	assert.Equal(t, 1, saved[0].Position)
	assert.Equal(t, "m1", saved[0].Kind)
	assert.Equal(t, "3:1", saved[0].NodeID)
	assert.JSONEq(t, `{"content":{"quote":"Progress is possible.","author":"A. Steiner"}}`, string(saved[1].Content))

	summary := store.completed[*sr.ExportID]
	assert.Equal(t, db.ExportStatusCompleted, summary.Status)
	assert.Equal(t, "Academy: Module 3", summary.DocumentName)
	assert.Equal(t, 3, summary.FrameCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 1, summary.FailureCount)
}

func TestRun_StoreRecordsFailedSource(t *testing.T) {
	store := newRecordingStore()

	result, err := Run(context.Background(), Options{
		Sources: []string{"testdata/missing.json"},
		Store:   store,
	})
	require.NoError(t, err)

	summary := store.completed[*result.Sources[0].ExportID]
	assert.Equal(t, db.ExportStatusFailed, summary.Status)
	assert.Contains(t, summary.ErrorMessage, "failed to open document")
}

func TestRun_StoreRecordsAbortedSource(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	tests := []struct {
		name      string
		cancel    bool
		outputDir string
		wantErr   string
	}{
		{name: "cancelled run", cancel: true, wantErr: context.Canceled.Error()},
		{name: "output not writable", outputDir: blocked, wantErr: "failed to create output directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}
			store := newRecordingStore()

			result, err := Run(ctx, Options{
				Sources:   []string{fixture},
				OutputDir: tt.outputDir,
				Store:     store,
				Logger:    zerolog.Nop(),
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			sr := result.Sources[0]
			require.NotNil(t, sr)
			require.NotNil(t, sr.ExportID)
			summary, ok := store.completed[*sr.ExportID]
			require.True(t, ok, "export must be completed")
			assert.Equal(t, db.ExportStatusFailed, summary.Status)
			assert.Contains(t, summary.ErrorMessage, tt.wantErr)
		})
	}
}

func copyFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRun_SameBaseNameGetsOwnDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	first := copyFixture(t, filepath.Join(in, "a", "doc.json"))
	second := copyFixture(t, filepath.Join(in, "b", "doc.json"))

	result, err := Run(context.Background(), Options{
		Sources:     []string{first, second},
		OutputDir:   out,
		Concurrency: 2,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "doc"), result.Sources[0].OutputDir)
	assert.Equal(t, filepath.Join(out, "doc_2"), result.Sources[1].OutputDir)
	for _, sr := range result.Sources {
		for _, name := range []string{ModulesFile, "01_m1.json", "02_quote.json", "03_quote.json"} {
			assert.FileExists(t, filepath.Join(sr.OutputDir, name))
		}
	}
}

func TestRun_RemovesStaleModuleFiles(t *testing.T) {
	out := t.TempDir()
	dir := filepath.Join(out, "module_3")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "07_text.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	_, err := Run(context.Background(), Options{
		Sources:   []string{fixture},
		OutputDir: out,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "07_text.json"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "01_m1.json"))
}

func TestOutputNames(t *testing.T) {
	got := outputNames([]string{"a/doc.json", "b/doc.json", "KEY", "c/Doc.json", "doc_2.json"})
	assert.Equal(t, []string{"doc", "doc_2", "KEY", "Doc_4", "doc_2_5"}, got)
}

func TestRun_Progress(t *testing.T) {
	var mu sync.Mutex
	var stages []string

	_, err := Run(context.Background(), Options{
		Sources:   []string{fixture},
		OutputDir: t.TempDir(),
		Store:     newRecordingStore(),
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			stages = append(stages, e.Stage)
			assert.NotEmpty(t, e.ExportID)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{StageLoad, StageExtract, StageWrite, StagePersist}, stages)
}

func TestIsLocalSource(t *testing.T) {
	assert.True(t, IsLocalSource("export.json"))
	assert.True(t, IsLocalSource("exports/EXPORT.JSON"))
	assert.True(t, IsLocalSource(filepath.Join("a", "b")))
	assert.False(t, IsLocalSource("aBcD1234efGH5678"))
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"aBcD1234", "aBcD1234"},
		{"testdata/module_3.json", "module_3"},
		{"exports/Module 3 (final).json", "Module_3_final"},
		{"...json", "document"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.source))
		})
	}
}

func TestModuleFileName(t *testing.T) {
	assert.Equal(t, "01_c1.json", ModuleFileName(1, types.KindC1))
	assert.Equal(t, "12_list_of_lessons.json", ModuleFileName(12, types.KindListOfLessons))
}
