package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveModules replaces the modules of an export in a single transaction
func (db *DB) SaveModules(ctx context.Context, exportID uuid.UUID, modules []ModuleInput) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE export_id = $1`, exportID); err != nil {
		return fmt.Errorf("failed to clear modules: %w", err)
	}

	batch := &pgx.Batch{}
	for _, m := range modules {
		batch.Queue(
			`INSERT INTO modules (export_id, position, node_id, frame_name, kind, content)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			exportID, m.Position, m.NodeID, m.FrameName, m.Kind, []byte(m.Content),
		)
	}
	results := tx.SendBatch(ctx, batch)
	for _, m := range modules {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to insert module %s (%s): %w", m.FrameName, m.Kind, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to insert modules: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const moduleColumns = `id, export_id, position, node_id, frame_name, kind, content, created_at`

func scanModule(row pgx.Row) (*Module, error) {
	var m Module
	var content []byte
	if err := row.Scan(&m.ID, &m.ExportID, &m.Position, &m.NodeID, &m.FrameName, &m.Kind, &content, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Content = content
	return &m, nil
}

// ListModules retrieves the modules of an export in document order,
// optionally restricted to one kind
func (db *DB) ListModules(ctx context.Context, exportID uuid.UUID, kind string) ([]Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE export_id = $1`
	args := []any{exportID}
	if kind != "" {
		query += " AND kind = $2"
		args = append(args, kind)
	}
	query += " ORDER BY position ASC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	modules := []Module{}
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, *m)
	}
	return modules, rows.Err()
}

// GetModule retrieves a module by ID
func (db *DB) GetModule(ctx context.Context, moduleID uuid.UUID) (*Module, error) {
	m, err := scanModule(db.pool.QueryRow(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE id = $1`,
		moduleID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return m, nil
}
