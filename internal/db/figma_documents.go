package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetCachedDocument returns a cached file body and when it was fetched.
// A missing entry returns a nil body and no error.
func (db *DB) GetCachedDocument(ctx context.Context, cacheKey string) ([]byte, time.Time, error) {
	var body []byte
	var fetchedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT body, fetched_at FROM figma_documents WHERE cache_key = $1`,
		cacheKey,
	).Scan(&body, &fetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to get cached document %s: %w", cacheKey, err)
	}
	return body, fetchedAt, nil
}

// SaveCachedDocument stores or refreshes a cached file body
func (db *DB) SaveCachedDocument(ctx context.Context, cacheKey string, body []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO figma_documents (cache_key, body, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (cache_key) DO UPDATE SET body = $2, fetched_at = NOW()`,
		cacheKey, body,
	)
	if err != nil {
		return fmt.Errorf("failed to cache document %s: %w", cacheKey, err)
	}
	return nil
}
