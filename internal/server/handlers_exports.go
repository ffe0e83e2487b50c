package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/academy-frames/internal/db"
	"github.com/jonathan/academy-frames/internal/pipeline"
	"github.com/jonathan/academy-frames/internal/server/middleware"
	"github.com/jonathan/academy-frames/internal/types"
)

// maxFileKeys bounds how many documents a single request may export.
const maxFileKeys = 10

var fileKeyPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,64}$`)

// CreateExportRequest is the body for POST /exports
type CreateExportRequest struct {
	FileKeys []string `json:"file_keys"`
	Pages    []string `json:"pages,omitempty"`
	Strict   bool     `json:"strict,omitempty"`
}

// ExportOutcome summarises one document of an export request.
type ExportOutcome struct {
	Source       string             `json:"source"`
	ExportID     *uuid.UUID         `json:"export_id,omitempty"`
	DocumentName string             `json:"document_name,omitempty"`
	Modules      int                `json:"modules"`
	Skipped      []pipeline.Skip    `json:"skipped"`
	Failures     []pipeline.Failure `json:"failures"`
}

// CreateExportResponse is the response for POST /exports
type CreateExportResponse struct {
	Exports []ExportOutcome `json:"exports"`
	Error   string          `json:"error,omitempty"`
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

func parseID(r *http.Request, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid %s ID", resource)}
	}
	return id, nil
}

func (s *Server) requireStore() error {
	if s.store == nil {
		return &ErrUnavailable{Feature: "database"}
	}
	return nil
}

func (req *CreateExportRequest) validate() error {
	if len(req.FileKeys) == 0 {
		return &ErrValidation{Field: "file_keys", Message: "at least one file key is required"}
	}
	if len(req.FileKeys) > maxFileKeys {
		return &ErrValidation{Field: "file_keys", Message: fmt.Sprintf("at most %d file keys per request", maxFileKeys)}
	}
	for _, key := range req.FileKeys {
		// Keys only; the server never reads local paths.
		if !fileKeyPattern.MatchString(key) {
			return &ErrValidation{Field: "file_keys", Message: fmt.Sprintf("invalid file key %q", key)}
		}
	}
	return nil
}

func (s *Server) decodeExportRequest(w http.ResponseWriter, r *http.Request) (*CreateExportRequest, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, &ErrUnavailable{Feature: "Figma access"}
	}
	var req CreateExportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxModuleBytes)).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Server) runExport(ctx context.Context, r *http.Request, req *CreateExportRequest, onProgress pipeline.ProgressCallback) (*pipeline.Result, error) {
	logger := s.logger
	if subject, err := middleware.Subject(r); err == nil {
		logger = logger.With().Str("subject", subject).Logger()
	}
	return pipeline.Run(ctx, pipeline.Options{
		Sources:     req.FileKeys,
		Pages:       req.Pages,
		Concurrency: s.concurrency,
		Strict:      req.Strict,
		Fetcher:     s.fetcher,
		FileOptions: s.fileOptions,
		Store:       s.store,
		Logger:      logger,
		OnProgress:  onProgress,
	})
}

func outcomes(result *pipeline.Result) []ExportOutcome {
	if result == nil {
		return []ExportOutcome{}
	}
	out := make([]ExportOutcome, 0, len(result.Sources))
	for _, sr := range result.Sources {
		if sr == nil {
			continue
		}
		out = append(out, ExportOutcome{
			Source:       sr.Source,
			ExportID:     sr.ExportID,
			DocumentName: sr.DocumentName,
			Modules:      len(sr.Frames),
			Skipped:      sr.Skipped,
			Failures:     sr.Failures,
		})
	}
	return out
}

// handleCreateExport extracts the requested documents and stores their modules
func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeExportRequest(w, r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	result, err := s.runExport(r.Context(), r, req, nil)
	resp := CreateExportResponse{Exports: outcomes(result)}
	if err != nil {
		resp.Error = err.Error()
		s.jsonResponse(w, http.StatusUnprocessableEntity, resp)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleCreateExportStream runs an export and streams progress via SSE
func (s *Server) handleCreateExportStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeExportRequest(w, r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.runExport(r.Context(), r, req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.Warn().Err(err).Msg("failed to write SSE event")
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(CreateExportResponse{Exports: outcomes(result)})
}

var exportStatuses = map[string]bool{
	db.ExportStatusRunning:   true,
	db.ExportStatusCompleted: true,
	db.ExportStatusFailed:    true,
}

// handleListExports lists exports, newest first
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errorFrom(w, err)
		return
	}

	filters := db.ExportFilters{
		Source: r.URL.Query().Get("source"),
		Status: r.URL.Query().Get("status"),
		Limit:  parseQueryInt(r, "limit", 50, 200),
	}
	if filters.Status != "" && !exportStatuses[filters.Status] {
		s.errorFrom(w, &ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", filters.Status)})
		return
	}

	exports, err := s.store.ListExports(r.Context(), filters)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if exports == nil {
		exports = []db.Export{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"exports": exports,
		"total":   len(exports),
		"limit":   filters.Limit,
	})
}

func (s *Server) loadExport(r *http.Request) (*db.Export, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	id, err := parseID(r, "export")
	if err != nil {
		return nil, err
	}
	export, err := s.store.GetExport(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if export == nil {
		return nil, &ErrNotFound{Resource: "export", ID: id.String()}
	}
	return export, nil
}

// handleGetExport retrieves an export by ID
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	export, err := s.loadExport(r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, export)
}

// handleDeleteExport deletes an export and its modules
func (s *Server) handleDeleteExport(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errorFrom(w, err)
		return
	}
	id, err := parseID(r, "export")
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if err := s.store.DeleteExport(r.Context(), id); err != nil {
		s.errorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListModules lists the modules of an export in frame order
func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	export, err := s.loadExport(r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" {
		if _, err := types.ParseKind(kind); err != nil {
			s.errorFrom(w, &ErrValidation{Field: "kind", Message: err.Error()})
			return
		}
	}

	modules, err := s.store.ListModules(r.Context(), export.ID, kind)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if modules == nil {
		modules = []db.Module{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"export_id": export.ID,
		"modules":   modules,
		"total":     len(modules),
	})
}

// handleGetModule retrieves a single stored module
func (s *Server) handleGetModule(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errorFrom(w, err)
		return
	}
	id, err := parseID(r, "module")
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	module, err := s.store.GetModule(r.Context(), id)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if module == nil {
		s.errorFrom(w, &ErrNotFound{Resource: "module", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, module)
}
