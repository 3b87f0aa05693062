package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	attractionsFile = "attractions.json"
	routesFile      = "routes.json"
)

// FileSource reads attractions.json and routes.json from Dir.
// A missing file yields an empty list.
type FileSource struct {
	Dir string
}

func (f FileSource) Load(ctx context.Context) ([]Stop, []Tour, error) {
	var al attractionList
	if err := readJSON(filepath.Join(f.Dir, attractionsFile), &al); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var rl routeList
	if err := readJSON(filepath.Join(f.Dir, routesFile), &rl); err != nil {
		return nil, nil, err
	}
	stops, err := decodeAttractions(al)
	if err != nil {
		return nil, nil, err
	}
	tours, err := decodeRoutes(rl)
	if err != nil {
		return nil, nil, err
	}
	return stops, tours, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
