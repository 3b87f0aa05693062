// Package progress records visited stops and derives points, streaks and
// achievements from them. State lives for one session only.
package progress

import (
	"log/slog"
	"slices"
	"time"

	"github.com/jask/audioguide/internal/catalog"
)

// DefaultPointsPerVisit is awarded for every newly visited stop.
const DefaultPointsPerVisit = 10

// State is a snapshot of the visitor's progress.
type State struct {
	Visited        []string
	Points         int
	Streak         int
	CompletedTours []string
	// LastVisitDay is midnight of the day of the latest new visit, zero if none.
	LastVisitDay time.Time
}

// VisitedCount returns the number of distinct stops visited.
func (s State) VisitedCount() int { return len(s.Visited) }

// HasVisited reports whether id is in the visited set.
func (s State) HasVisited(id string) bool { return slices.Contains(s.Visited, id) }

// HasCompleted reports whether every resolvable stop of tour id was visited.
func (s State) HasCompleted(tourID string) bool { return slices.Contains(s.CompletedTours, tourID) }

// Tracker owns State. It is not safe for concurrent use.
type Tracker struct {
	store          *catalog.Store
	pointsPerVisit int
	now            func() time.Time
	log            *slog.Logger

	state   State
	visited map[string]struct{}
}

// NewTracker returns an empty tracker. store may be nil, in which case no
// tour is ever completed. pointsPerVisit <= 0 uses DefaultPointsPerVisit.
func NewTracker(store *catalog.Store, pointsPerVisit int, log *slog.Logger) *Tracker {
	if pointsPerVisit <= 0 {
		pointsPerVisit = DefaultPointsPerVisit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		store:          store,
		pointsPerVisit: pointsPerVisit,
		now:            time.Now,
		log:            log,
		visited:        map[string]struct{}{},
	}
}

// SetClock replaces the time source used for streaks.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// RecordVisit adds stopID to the visited set and awards points. Repeated ids
// are no-ops.
func (t *Tracker) RecordVisit(stopID string) {
	if stopID == "" {
		return
	}
	if _, ok := t.visited[stopID]; ok {
		return
	}
	t.visited[stopID] = struct{}{}
	t.state.Visited = append(t.state.Visited, stopID)
	t.state.Points += t.pointsPerVisit
	t.touchStreak()
	t.refreshCompleted()
	t.log.Debug("visit recorded", "stop", stopID, "points", t.state.Points, "streak", t.state.Streak)
}

// State returns a copy of the current progress.
func (t *Tracker) State() State {
	s := t.state
	s.Visited = slices.Clone(t.state.Visited)
	s.CompletedTours = slices.Clone(t.state.CompletedTours)
	return s
}

func (t *Tracker) touchStreak() {
	today := dayOf(t.now())
	last := t.state.LastVisitDay
	switch {
	case last.IsZero():
		t.state.Streak = 1
	case today.Equal(last):
	case today.Equal(last.AddDate(0, 0, 1)):
		t.state.Streak++
	case today.After(last):
		t.state.Streak = 1
	default:
		// clock went backwards; keep the streak and the later day
		return
	}
	t.state.LastVisitDay = today
}

func (t *Tracker) refreshCompleted() {
	if t.store == nil {
		return
	}
	tours := t.store.Tours()
	for i := range tours {
		tour := &tours[i]
		if t.state.HasCompleted(tour.ID) {
			continue
		}
		stops := t.store.TourStops(tour)
		if len(stops) == 0 {
			continue
		}
		done := true
		for _, s := range stops {
			if _, ok := t.visited[s.ID]; !ok {
				done = false
				break
			}
		}
		if done {
			t.state.CompletedTours = append(t.state.CompletedTours, tour.ID)
			t.log.Info("tour completed", "tour", tour.ID)
		}
	}
}

func dayOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
