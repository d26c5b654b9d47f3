package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/pkg/models"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect("sqlite3", filepath.Join(t.TempDir(), "data", "growthbot.db"))
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver requires cgo")
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProgressRepository_EmptyLoad(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))

	table, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestProgressRepository_RoundTrip(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))
	ctx := context.Background()

	want := models.ProgressTable{Records: []models.ProgressRecord{
		{Date: "2024-01-02", Challenge: "later date first", Status: models.StatusPending},
		{Date: "2024-01-01", Challenge: "Comma, \"quotes\" 🌱", Status: models.StatusCompleted},
	}}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	shorter := models.ProgressTable{Records: want.Records[:1]}
	require.NoError(t, repo.Save(ctx, shorter))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, shorter, got)
}

func TestProgressRepository_MalformedRow(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO progress (position, date, challenge, status) VALUES (0, '2024-01-01', 'x', 'Done')`)
	require.NoError(t, err)

	_, err = NewProgressRepository(db).Load(context.Background())
	assert.ErrorIs(t, err, progress.ErrMalformedStorage)
}
