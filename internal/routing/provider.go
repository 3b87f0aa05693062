// Package routing keeps a drawn path in step with the ordered waypoint list
// of the active tour, against an asynchronous, fallible path provider.
package routing

import (
	"context"
	"errors"

	"github.com/jask/audioguide/internal/catalog"
)

// ErrNoRoute is returned when a provider answers without a usable geometry.
var ErrNoRoute = errors.New("routing: no route")

// TravelMode selects the provider profile.
type TravelMode string

const (
	ModePedestrian TravelMode = "pedestrian"
)

// Path is an ordered coordinate sequence.
type Path []catalog.Coordinate

// Provider computes a path through waypoints. Implementations must be safe
// for concurrent use; calls cannot be aborted other than through ctx.
type Provider interface {
	Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error)
}

// Straight joins the waypoints with straight segments. It needs no network.
type Straight struct{}

func (Straight) Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(waypoints) < 2 {
		return nil, ErrNoRoute
	}
	return append(Path(nil), waypoints...), nil
}
