package repository

import (
	"context"
	"database/sql"
	"time"
)

// ImportRepo keeps the catalog import history.
type ImportRepo struct {
	db *sql.DB
}

func NewImportRepo(db *sql.DB) *ImportRepo { return &ImportRepo{db: db} }

func (r *ImportRepo) Add(ctx context.Context, tx *sql.Tx, rec ImportRecord) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO catalog_imports(id, source, stop_count, tour_count, imported_at) VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Source, rec.StopCount, rec.TourCount, rec.ImportedAt)
	return err
}

// Latest returns the most recent import, or nil if the catalog was never imported.
func (r *ImportRepo) Latest(ctx context.Context) (*ImportRecord, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source, stop_count, tour_count, imported_at
	FROM catalog_imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`)
	var rec ImportRecord
	var at time.Time
	if err := row.Scan(&rec.ID, &rec.Source, &rec.StopCount, &rec.TourCount, &at); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rec.ImportedAt = at
	return &rec, nil
}
