// Package navigation holds the session state machine: which screen is
// active, which tour and stop are selected and where the user is within the
// tour. It also derives the read-side projections the presentation consumes
// (per-stop emphasis, waypoint list).
package navigation

import "github.com/jask/audioguide/internal/catalog"

// Screen identifies the active view.
type Screen string

const (
	ScreenTourSelect   Screen = "tour-select"
	ScreenMap          Screen = "map"
	ScreenFreeRoamPick Screen = "free-roam-pick"
	ScreenProgress     Screen = "progress"
	ScreenSettings     Screen = "settings"
)

// State is the canonical "where the user is" record.
//
// Index is meaningful only when Tour is set and FreeRoam is false; then it
// is always within [0, len(Tour.StopIDs)-1].
type State struct {
	Screen   Screen
	Tour     *catalog.Tour
	Stop     *catalog.Stop
	Index    int
	FreeRoam bool
}

// OnTour reports whether a tour is active with ordered traversal.
func (s State) OnTour() bool {
	return s.Tour != nil && !s.FreeRoam
}

// Waypoints derives the ordered coordinate list for path computation: the
// active tour's resolvable stop coordinates in tour order. It is empty in
// free roam or without a tour.
func Waypoints(s State, store *catalog.Store) []catalog.Coordinate {
	if !s.OnTour() || store == nil {
		return nil
	}
	stops := store.TourStops(s.Tour)
	out := make([]catalog.Coordinate, 0, len(stops))
	for _, st := range stops {
		out = append(out, st.Coordinate)
	}
	return out
}

// Fallback returns the active tour's precomputed path, if any.
func Fallback(s State) []catalog.Coordinate {
	if !s.OnTour() {
		return nil
	}
	return s.Tour.Fallback
}
