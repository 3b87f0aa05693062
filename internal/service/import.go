package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jask/audioguide/internal/catalog"
	"github.com/jask/audioguide/internal/database"
	"github.com/jask/audioguide/internal/database/repository"
)

// ImportService copies a catalog from any Source into the sqlite cache.
type ImportService struct {
	DB      *sql.DB
	Catalog *repository.CatalogRepo
	Imports *repository.ImportRepo
	Log     *slog.Logger
}

type ImportResult struct {
	Stops int
	Tours int
	// Dangling lists "tour/stop" references to stops absent from the catalog.
	Dangling []string
}

// Import loads src and replaces the stored catalog in one transaction. label
// names the source in the import history.
func (s *ImportService) Import(ctx context.Context, src catalog.Source, label string) (ImportResult, error) {
	if s.DB == nil || s.Catalog == nil {
		return ImportResult{}, fmt.Errorf("import: db not configured")
	}
	stops, tours, err := src.Load(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: load %s: %w", label, err)
	}
	// the store drops duplicate ids and fixes the order
	store := catalog.NewStore(stops, tours)
	res := ImportResult{Stops: len(store.Stops()), Tours: len(store.Tours())}
	for _, t := range store.Tours() {
		for _, id := range t.StopIDs {
			if store.Stop(id) == nil {
				res.Dangling = append(res.Dangling, t.ID+"/"+id)
			}
		}
	}

	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Catalog.ReplaceAll(ctx, tx, store.Stops(), store.Tours()); err != nil {
			return err
		}
		if s.Imports == nil {
			return nil
		}
		return s.Imports.Add(ctx, tx, repository.ImportRecord{
			ID:         uuid.NewString(),
			Source:     label,
			StopCount:  res.Stops,
			TourCount:  res.Tours,
			ImportedAt: time.Now().UTC().Truncate(time.Second),
		})
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: store: %w", err)
	}
	if s.Log != nil {
		s.Log.Info("catalog imported", "source", label, "stops", res.Stops, "tours", res.Tours, "dangling", len(res.Dangling))
	}
	return res, nil
}
