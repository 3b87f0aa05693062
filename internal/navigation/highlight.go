package navigation

import "github.com/jask/audioguide/internal/catalog"

// Visual is the emphasis a stop gets on the map.
type Visual string

const (
	VisualSelected Visual = "active-selected"
	VisualOnTour   Visual = "on-current-tour"
	VisualNeutral  Visual = "neutral"
)

// ResolveVisual classifies stop against s. It is pure and safe to call for
// every stop on every render.
func ResolveVisual(stop catalog.Stop, s State) Visual {
	if s.Stop != nil && s.Stop.ID == stop.ID {
		return VisualSelected
	}
	if s.Tour != nil && s.Tour.Contains(stop.ID) {
		return VisualOnTour
	}
	return VisualNeutral
}
