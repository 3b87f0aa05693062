package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/audioguide/internal/catalog"
)

// CatalogRepo stores stops and tours. It also serves as a catalog.Source.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

var _ catalog.Source = (*CatalogRepo)(nil)

// ReplaceAll swaps the whole catalog inside tx.
func (r *CatalogRepo) ReplaceAll(ctx context.Context, tx *sql.Tx, stops []catalog.Stop, tours []catalog.Tour) error {
	for _, t := range []string{"tour_fallback_points", "tour_stops", "tours", "stops"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	for _, s := range stops {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO stops(id, name, description, address, lat, lon, image, audio_url, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, description=excluded.description,
			address=excluded.address, lat=excluded.lat, lon=excluded.lon, image=excluded.image,
			audio_url=excluded.audio_url, sort_order=excluded.sort_order;
		`, s.ID, s.Name, s.Description, s.Address, s.Coordinate.Lat, s.Coordinate.Lon, s.Image, s.AudioURL, s.Order)
		if err != nil {
			return fmt.Errorf("insert stop %s: %w", s.ID, err)
		}
	}
	for idx, t := range tours {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO tours(id, name, description, sort_order) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, description=excluded.description, sort_order=excluded.sort_order;
		`, t.ID, t.Name, t.Description, idx)
		if err != nil {
			return fmt.Errorf("insert tour %s: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tour_stops WHERE tour_id = ?`, t.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tour_fallback_points WHERE tour_id = ?`, t.ID); err != nil {
			return err
		}
		for pos, id := range t.StopIDs {
			if _, err := tx.ExecContext(ctx, `INSERT INTO tour_stops(tour_id, position, stop_id) VALUES (?, ?, ?)`, t.ID, pos, id); err != nil {
				return fmt.Errorf("insert tour %s stop %d: %w", t.ID, pos, err)
			}
		}
		for pos, c := range t.Fallback {
			if _, err := tx.ExecContext(ctx, `INSERT INTO tour_fallback_points(tour_id, position, lat, lon) VALUES (?, ?, ?, ?)`, t.ID, pos, c.Lat, c.Lon); err != nil {
				return fmt.Errorf("insert tour %s point %d: %w", t.ID, pos, err)
			}
		}
	}
	return nil
}

func (r *CatalogRepo) ListStops(ctx context.Context) ([]catalog.Stop, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, description, address, lat, lon, image, audio_url, sort_order
	FROM stops ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []catalog.Stop
	for rows.Next() {
		var s catalog.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Address, &s.Coordinate.Lat, &s.Coordinate.Lon, &s.Image, &s.AudioURL, &s.Order); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListTours(ctx context.Context) ([]catalog.Tour, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM tours ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	var out []catalog.Tour
	for rows.Next() {
		var t catalog.Tour
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// second pass; the connection pool holds a single connection
	for i := range out {
		if out[i].StopIDs, err = r.tourStopIDs(ctx, out[i].ID); err != nil {
			return nil, err
		}
		if out[i].Fallback, err = r.tourFallback(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Load implements catalog.Source.
func (r *CatalogRepo) Load(ctx context.Context) ([]catalog.Stop, []catalog.Tour, error) {
	stops, err := r.ListStops(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list stops: %w", err)
	}
	tours, err := r.ListTours(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list tours: %w", err)
	}
	return stops, tours, nil
}

func (r *CatalogRepo) tourStopIDs(ctx context.Context, tourID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stop_id FROM tour_stops WHERE tour_id = ? ORDER BY position`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) tourFallback(ctx context.Context, tourID string) ([]catalog.Coordinate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT lat, lon FROM tour_fallback_points WHERE tour_id = ? ORDER BY position`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []catalog.Coordinate
	for rows.Next() {
		var c catalog.Coordinate
		if err := rows.Scan(&c.Lat, &c.Lon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
