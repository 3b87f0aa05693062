package navigation

import (
	"log/slog"

	"github.com/jask/audioguide/internal/catalog"
)

// VisitRecorder receives a "stop visited" event on every stop selection.
type VisitRecorder interface {
	RecordVisit(stopID string)
}

// Controller exclusively owns and mutates navigation State. Every operation
// is total: invalid combinations are silent no-ops.
type Controller struct {
	store  *catalog.Store
	visits VisitRecorder
	log    *slog.Logger
	state  State
}

// NewController starts on the tour-select screen with nothing selected.
func NewController(store *catalog.Store, visits VisitRecorder, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		store:  store,
		visits: visits,
		log:    log,
		state:  State{Screen: ScreenTourSelect},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// SelectTour activates tour, resets traversal to index 0, leaves free roam
// and opens the map. The selected stop is the tour's first resolvable stop,
// or nil when none resolves.
func (c *Controller) SelectTour(tour *catalog.Tour) {
	if tour == nil {
		return
	}
	c.state.Tour = tour
	c.state.FreeRoam = false
	c.state.Index = 0
	c.state.Stop = nil
	if stops := c.store.TourStops(tour); len(stops) > 0 {
		c.state.Stop = stops[0]
		if stops[0].ID != tour.StopIDs[0] {
			c.log.Debug("tour starts with unknown stop", "tour", tour.ID, "stop", tour.StopIDs[0])
		}
	} else {
		c.log.Debug("tour has no resolvable stops", "tour", tour.ID)
	}
	c.state.Screen = ScreenMap
}

// StartFreeRoam drops any tour and opens the map centred on stop with no
// "next" semantics.
func (c *Controller) StartFreeRoam(stop *catalog.Stop) {
	c.state.Tour = nil
	c.state.FreeRoam = true
	c.state.Index = 0
	c.state.Stop = stop
	c.state.Screen = ScreenMap
}

// SelectStop makes stop the selected stop. On an active tour the index jumps
// to the stop's first position in the tour; a stop outside the tour leaves
// the index alone. Every call reports a visit.
func (c *Controller) SelectStop(stop *catalog.Stop) {
	if stop == nil {
		return
	}
	c.state.Stop = stop
	if c.state.OnTour() {
		if i := c.state.Tour.IndexOf(stop.ID); i >= 0 {
			c.state.Index = i
		}
	}
	if c.visits != nil {
		c.visits.RecordVisit(stop.ID)
	}
}

// Advance moves to the next stop of the active tour. It is a no-op in free
// roam, without a tour, at the last index, or when the next stop id does not
// resolve.
func (c *Controller) Advance() {
	if !c.HasNext() {
		return
	}
	next := c.state.Index + 1
	id := c.state.Tour.StopIDs[next]
	stop := c.store.Stop(id)
	if stop == nil {
		c.log.Debug("advance blocked by unknown stop", "tour", c.state.Tour.ID, "stop", id)
		return
	}
	c.state.Index = next
	c.state.Stop = stop
}

// CloseStopCard clears the selected stop only.
func (c *Controller) CloseStopCard() {
	c.state.Stop = nil
}

// NavigateTo switches screens. Leaving the map for another screen ends the
// map session: tour, stop and free roam are cleared.
func (c *Controller) NavigateTo(screen Screen) {
	if c.state.Screen == ScreenMap && screen != ScreenMap {
		c.state.Tour = nil
		c.state.Stop = nil
		c.state.FreeRoam = false
		c.state.Index = 0
	}
	c.state.Screen = screen
}

// HasNext reports whether Advance can move past the current index.
func (c *Controller) HasNext() bool {
	s := c.state
	return s.OnTour() && s.Index < len(s.Tour.StopIDs)-1
}

// Position returns the 1-based point number and the tour length, or 0, 0
// outside a tour.
func (c *Controller) Position() (int, int) {
	if !c.state.OnTour() {
		return 0, 0
	}
	return c.state.Index + 1, len(c.state.Tour.StopIDs)
}
