//go:build integration
// +build integration

package db

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestExportLifecycle_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	source := "file-" + uuid.New().String()
	id, err := db.CreateExport(ctx, source)
	require.NoError(t, err)
	defer func() { _ = db.DeleteExport(ctx, id) }()

	export, err := db.GetExport(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, export)
	assert.Equal(t, ExportStatusRunning, export.Status)
	assert.Nil(t, export.CompletedAt)

	err = db.CompleteExport(ctx, id, ExportSummary{
		DocumentName: "Module 3",
		FrameCount:   2,
		SkippedCount: 1,
	})
	require.NoError(t, err)

	export, err = db.GetExport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ExportStatusCompleted, export.Status)
	assert.Equal(t, "Module 3", export.DocumentName)
	assert.Equal(t, 2, export.FrameCount)
	assert.NotNil(t, export.CompletedAt)

	exports, err := db.ListExports(ctx, ExportFilters{Source: source})
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, id, exports[0].ID)

	missing, err := db.GetExport(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveModules_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id, err := db.CreateExport(ctx, "file-"+uuid.New().String())
	require.NoError(t, err)
	defer func() { _ = db.DeleteExport(ctx, id) }()

	modules := []ModuleInput{
		{Position: 0, NodeID: "1:1", FrameName: "m1_cover", Kind: "m1", Content: json.RawMessage(`{"content":{"image":"a","lessonId":"1","title":"t","cta":"c"}}`)},
		{Position: 1, NodeID: "1:2", FrameName: "quote_large", Kind: "quote", Content: json.RawMessage(`{"content":{"quote":"q","author":"a"}}`)},
	}
	require.NoError(t, db.SaveModules(ctx, id, modules))
	// Saving again replaces rather than duplicates.
	require.NoError(t, db.SaveModules(ctx, id, modules))

	all, err := db.ListModules(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "m1_cover", all[0].FrameName)
	assert.JSONEq(t, string(modules[1].Content), string(all[1].Content))

	quotes, err := db.ListModules(ctx, id, "quote")
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	m, err := db.GetModule(ctx, quotes[0].ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "1:2", m.NodeID)

	m, err = db.GetModule(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestCachedDocument_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	key := "file-" + uuid.New().String()
	body, _, err := db.GetCachedDocument(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, body)

	require.NoError(t, db.SaveCachedDocument(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, db.SaveCachedDocument(ctx, key, []byte(`{"v":2}`)))

	body, fetchedAt, err := db.GetCachedDocument(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(body))
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Minute)
}
