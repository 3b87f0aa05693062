package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/audioguide/internal/catalog"
	"github.com/jask/audioguide/internal/database"
	"github.com/jask/audioguide/internal/database/repository"
)

type staticSource struct {
	stops []catalog.Stop
	tours []catalog.Tour
	err   error
}

func (s staticSource) Load(context.Context) ([]catalog.Stop, []catalog.Tour, error) {
	return s.stops, s.tours, s.err
}

func setup(t *testing.T) (*sql.DB, *ImportService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, &ImportService{
		DB:      db,
		Catalog: repository.NewCatalogRepo(db),
		Imports: repository.NewImportRepo(db),
	}
}

func TestImport(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, svc := setup(t)

	src := staticSource{
		stops: []catalog.Stop{
			{ID: "b", Name: "B", Order: 2, Coordinate: catalog.Coordinate{Lat: 56.33, Lon: 44.01}},
			{ID: "a", Name: "A", Order: 1, Coordinate: catalog.Coordinate{Lat: 56.32, Lon: 44.00}},
			{ID: "a", Name: "A again", Order: 3},
		},
		tours: []catalog.Tour{{ID: "t", Name: "T", StopIDs: []string{"a", "ghost", "b"}}},
	}
	res, err := svc.Import(ctx, src, "unit")
	require.NoError(t, err)
	require.Equal(t, 2, res.Stops)
	require.Equal(t, 1, res.Tours)
	require.Equal(t, []string{"t/ghost"}, res.Dangling)

	stops, tours, err := svc.Catalog.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	require.Equal(t, "a", stops[0].ID)
	require.Equal(t, "A", stops[0].Name)
	require.Equal(t, []string{"a", "ghost", "b"}, tours[0].StopIDs)

	latest, err := svc.Imports.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "unit", latest.Source)
	require.Equal(t, 2, latest.StopCount)

	require.NoError(t, (&MaintenanceService{DB: db}).Reset(ctx))
	stops, tours, err = svc.Catalog.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stops)
	require.Empty(t, tours)
	latest, err = svc.Imports.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, latest)
}

func TestImportLoadFailureKeepsCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := setup(t)

	_, err := svc.Import(ctx, staticSource{stops: []catalog.Stop{{ID: "a", Name: "A"}}}, "first")
	require.NoError(t, err)

	boom := errors.New("unreachable")
	_, err = svc.Import(ctx, staticSource{err: boom}, "second")
	require.ErrorIs(t, err, boom)

	stops, _, err := svc.Catalog.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 1)
}

func TestImportFromFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, svc := setup(t)

	res, err := svc.Import(ctx, catalog.FileSource{Dir: filepath.Join("..", "..", "data")}, "data")
	require.NoError(t, err)
	require.Positive(t, res.Stops)
	require.Positive(t, res.Tours)
	require.Empty(t, res.Dangling)
}

func TestMaintenanceNeedsDB(t *testing.T) {
	require.Error(t, (&MaintenanceService{}).Reset(context.Background()))
	_, err := (&ImportService{}).Import(context.Background(), staticSource{}, "x")
	require.Error(t, err)
}
