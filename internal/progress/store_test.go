package progress

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/growthbot/pkg/models"
)

func TestFileStoreLoad_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.csv"))

	table, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []string{"Date", "Challenge", "Status"}, table.Columns())
}

func TestFileStoreLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	table, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	store := NewFileStore(path)
	ctx := context.Background()

	want := models.ProgressTable{Records: []models.ProgressRecord{
		{Date: "2024-01-01", Challenge: "Write down 3 things you're grateful for today 📝", Status: models.StatusCompleted},
		{Date: "2024-01-02", Challenge: `Comma, "quotes" and more`, Status: models.StatusPending},
		{Date: "2024-01-03", Challenge: "Multi\nline", Status: models.StatusCompleted},
	}}

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Date,Challenge,Status\n"))
	assert.Contains(t, string(raw), `2024-01-02,"Comma, ""quotes"" and more",Pending`)
}

func TestFileStoreSave_Overwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "progress.csv"))
	ctx := context.Background()

	first := models.ProgressTable{Records: []models.ProgressRecord{
		{Date: "2024-01-01", Challenge: "a", Status: models.StatusPending},
		{Date: "2024-01-02", Challenge: "b", Status: models.StatusPending},
	}}
	second := models.ProgressTable{Records: []models.ProgressRecord{
		{Date: "2024-01-03", Challenge: "c", Status: models.StatusCompleted},
	}}

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestFileStoreSave_WriteFailure(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing-dir", "progress.csv"))

	err := store.Save(context.Background(), models.ProgressTable{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedStorage)
}

func TestReadCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "wrong header", input: "day,task,state\n2024-01-01,a,Pending\n", line: 1},
		{name: "missing column", input: "Date,Challenge,Status\n2024-01-01,a\n", line: 2},
		{name: "bad date", input: "Date,Challenge,Status\n01/02/2024,a,Pending\n", line: 2},
		{name: "bad status", input: "Date,Challenge,Status\n2024-01-01,a,pending\n", line: 2},
		{name: "broken quoting", input: "Date,Challenge,Status\n2024-01-01,\"a,Pending\n", line: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), "progress.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedStorage)

			var malformedErr *MalformedError
			require.ErrorAs(t, err, &malformedErr)
			if tt.line > 0 {
				assert.Equal(t, tt.line, malformedErr.Line)
			}
		})
	}
}

func TestReadCSV_HeaderOnlyAndBOM(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\ufeffDate,Challenge,Status\n"), "progress.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}
