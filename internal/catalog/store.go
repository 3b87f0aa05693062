package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Source supplies the flat stop and tour lists at startup.
type Source interface {
	Load(ctx context.Context) ([]Stop, []Tour, error)
}

// Store is the read-only catalog keyed by identifier. It is shared by
// pointer after load and never mutated.
type Store struct {
	stops     []Stop
	tours     []Tour
	stopIndex map[string]int
	tourIndex map[string]int
}

// NewStore builds a Store. Stops are ordered by Order then ID; tours keep
// their input order. Duplicate identifiers keep the first occurrence.
func NewStore(stops []Stop, tours []Tour) *Store {
	s := &Store{
		stopIndex: make(map[string]int, len(stops)),
		tourIndex: make(map[string]int, len(tours)),
	}
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	for _, st := range sorted {
		if _, dup := s.stopIndex[st.ID]; dup {
			continue
		}
		s.stopIndex[st.ID] = len(s.stops)
		s.stops = append(s.stops, st)
	}
	for _, t := range tours {
		if _, dup := s.tourIndex[t.ID]; dup {
			continue
		}
		t.StopIDs = append([]string(nil), t.StopIDs...)
		t.Fallback = append([]Coordinate(nil), t.Fallback...)
		s.tourIndex[t.ID] = len(s.tours)
		s.tours = append(s.tours, t)
	}
	return s
}

// Stops returns every stop in display order. Callers must not modify the result.
func (s *Store) Stops() []Stop { return s.stops }

// Tours returns every tour. Callers must not modify the result.
func (s *Store) Tours() []Tour { return s.tours }

// Stop returns the stop with id, or nil.
func (s *Store) Stop(id string) *Stop {
	i, ok := s.stopIndex[id]
	if !ok {
		return nil
	}
	return &s.stops[i]
}

// Tour returns the tour with id, or nil.
func (s *Store) Tour(id string) *Tour {
	i, ok := s.tourIndex[id]
	if !ok {
		return nil
	}
	return &s.tours[i]
}

// TourStops resolves the tour's stop ids in tour order. Unknown ids are skipped.
func (s *Store) TourStops(t *Tour) []*Stop {
	if t == nil {
		return nil
	}
	out := make([]*Stop, 0, len(t.StopIDs))
	for _, id := range t.StopIDs {
		if st := s.Stop(id); st != nil {
			out = append(out, st)
		}
	}
	return out
}

// Search filters stops by a case-insensitive substring of name, description
// or address. Names within a small edit distance of the query follow the
// substring hits, closest first. An empty query returns every stop.
func (s *Store) Search(query string) []Stop {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.stops
	}
	var exact []Stop
	type fuzzyHit struct {
		stop Stop
		dist int
	}
	var fuzzy []fuzzyHit
	maxDist := len([]rune(q)) / 3
	for _, st := range s.stops {
		if strings.Contains(strings.ToLower(st.Name), q) ||
			strings.Contains(strings.ToLower(st.Description), q) ||
			strings.Contains(strings.ToLower(st.Address), q) {
			exact = append(exact, st)
			continue
		}
		if maxDist == 0 {
			continue
		}
		if d := nameDistance(st.Name, q); d <= maxDist {
			fuzzy = append(fuzzy, fuzzyHit{stop: st, dist: d})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].dist < fuzzy[j].dist })
	for _, h := range fuzzy {
		exact = append(exact, h.stop)
	}
	return exact
}

// nameDistance is the smallest edit distance between q and any word of name.
func nameDistance(name, q string) int {
	best := -1
	for _, w := range strings.Fields(strings.ToLower(name)) {
		d := levenshtein.ComputeDistance(w, q)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return len(q)
	}
	return best
}
