package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks the coordinate ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// Stop is a single point of interest. Immutable once loaded.
type Stop struct {
	ID          string
	Name        string
	Description string
	Address     string
	Coordinate  Coordinate
	Image       string
	AudioURL    string
	Order       int
}

// Tour is a named, ordered sequence of stops plus an optional precomputed path.
type Tour struct {
	ID          string
	Name        string
	Description string
	StopIDs     []string
	Fallback    []Coordinate
}

// Contains reports whether id is part of the tour.
func (t Tour) Contains(id string) bool {
	return t.IndexOf(id) >= 0
}

// IndexOf returns the first position of id in the tour, or -1.
func (t Tour) IndexOf(id string) int {
	for i, sid := range t.StopIDs {
		if sid == id {
			return i
		}
	}
	return -1
}
