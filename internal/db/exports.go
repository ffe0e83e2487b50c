package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const exportColumns = `id, source, document_name, status, frame_count, skipped_count,
		failure_count, error_message, created_at, completed_at`

func scanExport(row pgx.Row) (*Export, error) {
	var e Export
	var documentName, errorMessage *string
	err := row.Scan(&e.ID, &e.Source, &documentName, &e.Status, &e.FrameCount, &e.SkippedCount,
		&e.FailureCount, &errorMessage, &e.CreatedAt, &e.CompletedAt)
	if err != nil {
		return nil, err
	}
	e.DocumentName = derefString(documentName)
	e.ErrorMessage = derefString(errorMessage)
	return &e, nil
}

// CreateExport records the start of an export and returns its ID
func (db *DB) CreateExport(ctx context.Context, source string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO exports (source, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		source, ExportStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create export: %w", err)
	}
	return id, nil
}

// CompleteExport stores the outcome of an export
func (db *DB) CompleteExport(ctx context.Context, exportID uuid.UUID, summary ExportSummary) error {
	if summary.Status == "" {
		summary.Status = ExportStatusCompleted
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE exports
		 SET status = $1, document_name = $2, frame_count = $3, skipped_count = $4,
		     failure_count = $5, error_message = $6, completed_at = NOW()
		 WHERE id = $7`,
		summary.Status, nullIfEmpty(summary.DocumentName), summary.FrameCount, summary.SkippedCount,
		summary.FailureCount, nullIfEmpty(summary.ErrorMessage), exportID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete export: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("export %s: %w", exportID, ErrNotFound)
	}
	return nil
}

// GetExport retrieves an export by ID
func (db *DB) GetExport(ctx context.Context, exportID uuid.UUID) (*Export, error) {
	export, err := scanExport(db.pool.QueryRow(ctx,
		`SELECT `+exportColumns+` FROM exports WHERE id = $1`,
		exportID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return export, nil
}

// ListExports retrieves exports with optional filters, newest first
func (db *DB) ListExports(ctx context.Context, filters ExportFilters) ([]Export, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + exportColumns + ` FROM exports WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", argNum)
		args = append(args, filters.Source)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, *export)
	}
	return exports, rows.Err()
}

// DeleteExport deletes an export and its modules (via cascade)
func (db *DB) DeleteExport(ctx context.Context, exportID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM exports WHERE id = $1`, exportID)
	if err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("export %s: %w", exportID, ErrNotFound)
	}
	return nil
}
