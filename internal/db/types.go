package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Export status values
const (
	ExportStatusRunning   = "running"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// Export is one pipeline run over a single document
type Export struct {
	ID           uuid.UUID  `json:"id"`
	Source       string     `json:"source"`
	DocumentName string     `json:"document_name,omitempty"`
	Status       string     `json:"status"`
	FrameCount   int        `json:"frame_count"`
	SkippedCount int        `json:"skipped_count"`
	FailureCount int        `json:"failure_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ExportSummary holds the counts recorded when an export finishes
type ExportSummary struct {
	Status       string
	DocumentName string
	FrameCount   int
	SkippedCount int
	FailureCount int
	ErrorMessage string
}

// ExportFilters holds optional filters for listing exports
type ExportFilters struct {
	Source string
	Status string
	Limit  int
}

// Module is a stored content module
type Module struct {
	ID        uuid.UUID       `json:"id"`
	ExportID  uuid.UUID       `json:"export_id"`
	Position  int             `json:"position"`
	NodeID    string          `json:"node_id"`
	FrameName string          `json:"frame_name"`
	Kind      string          `json:"kind"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// ModuleInput is a module to be saved with an export
type ModuleInput struct {
	Position  int
	NodeID    string
	FrameName string
	Kind      string
	Content   json.RawMessage
}
