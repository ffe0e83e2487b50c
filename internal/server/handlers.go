package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/academy-frames/internal/schemas"
	"github.com/jonathan/academy-frames/internal/types"
)

// maxModuleBytes bounds request bodies sent for validation.
const maxModuleBytes = 1 << 20

// KindInfo describes one registered module shape.
type KindInfo struct {
	Kind        types.Kind `json:"kind"`
	Colorscheme bool       `json:"colorscheme"`
	Schema      string     `json:"schema"`
}

// ValidationResponse is the result of checking a module payload.
type ValidationResponse struct {
	Kind   types.Kind         `json:"kind"`
	Valid  bool               `json:"valid"`
	Errors []types.FieldError `json:"errors,omitempty"`
}

// handleListKinds lists every registered module shape
func (s *Server) handleListKinds(w http.ResponseWriter, _ *http.Request) {
	kinds := types.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, k := range kinds {
		infos = append(infos, KindInfo{
			Kind:        k,
			Colorscheme: types.HasColorscheme(k),
			Schema:      "/schemas/" + string(k),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"kinds": infos,
		"total": len(infos),
	})
}

// handleGetSchema serves the embedded JSON Schema for a kind
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	data, err := schemas.Schema(string(kind))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to write schema")
	}
}

// handleValidate checks a module payload against its schema and shape
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxModuleBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Request body is not valid JSON")
		return
	}

	resp, err := validateModule(kind, body)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, status, resp)
}

// validateModule runs the JSON Schema first, then the strict decode, and
// merges their findings by field.
func validateModule(kind types.Kind, body []byte) (*ValidationResponse, error) {
	resp := &ValidationResponse{Kind: kind}
	seen := map[string]bool{}

	err := schemas.ValidateModule(string(kind), body)
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			seen[fe.Field] = true
			resp.Errors = append(resp.Errors, types.FieldError{Field: fe.Field, Message: fe.Message})
		}
	case err != nil:
		return nil, err
	}

	_, err = types.DecodeModule(kind, body)
	var moduleErr *types.ValidationError
	switch {
	case errors.As(err, &moduleErr):
		for _, fe := range moduleErr.Errors {
			if !seen[fe.Field] {
				seen[fe.Field] = true
				resp.Errors = append(resp.Errors, fe)
			}
		}
	case err != nil && len(resp.Errors) == 0:
		resp.Errors = append(resp.Errors, types.FieldError{Field: "(root)", Message: err.Error()})
	}

	resp.Valid = len(resp.Errors) == 0
	return resp, nil
}
