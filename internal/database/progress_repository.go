// Package database stores the progress table in a SQL database through sqlx.
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/pkg/models"
)

// ProgressRepository keeps the progress table in the "progress" SQL table.
// Row order is carried by the position column.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

type progressRow struct {
	Position  int    `db:"position"`
	Date      string `db:"date"`
	Challenge string `db:"challenge"`
	Status    string `db:"status"`
}

// Load returns every row in insertion order
func (r *ProgressRepository) Load(ctx context.Context) (models.ProgressTable, error) {
	var rows []progressRow
	query := `SELECT position, date, challenge, status FROM progress ORDER BY position`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return models.ProgressTable{}, fmt.Errorf("failed to load progress: %w", err)
	}

	var table models.ProgressTable
	for _, row := range rows {
		record, err := progress.ParseRow([]string{row.Date, row.Challenge, row.Status})
		if err != nil {
			return models.ProgressTable{}, &progress.MalformedError{
				Source: "progress table",
				Line:   row.Position + 1,
				Reason: err.Error(),
			}
		}
		table.Records = append(table.Records, record)
	}
	return table, nil
}

// Save replaces the stored table in a single transaction
func (r *ProgressRepository) Save(ctx context.Context, table models.ProgressTable) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}

	insert := tx.Rebind(`INSERT INTO progress (position, date, challenge, status) VALUES (?, ?, ?, ?)`)
	for i, rec := range table.Records {
		if _, err := tx.ExecContext(ctx, insert, i, rec.Date, rec.Challenge, string(rec.Status)); err != nil {
			return fmt.Errorf("failed to save progress row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress: %w", err)
	}
	return nil
}

var _ progress.Store = (*ProgressRepository)(nil)
