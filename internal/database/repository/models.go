package repository

import "time"

// ImportRecord represents one catalog import.
type ImportRecord struct {
	ID         string
	Source     string
	StopCount  int
	TourCount  int
	ImportedAt time.Time
}
