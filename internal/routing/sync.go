package routing

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jask/audioguide/internal/catalog"
)

// Source tells where the resolved path came from.
type Source string

const (
	SourceNone     Source = "none"
	SourceComputed Source = "computed"
	SourceFallback Source = "fallback"
)

// Request is one path computation to run off the event loop.
type Request struct {
	Token     uuid.UUID
	Waypoints []catalog.Coordinate
	Mode      TravelMode
}

// Result is the provider's answer for Request.Token.
type Result struct {
	Token uuid.UUID
	Path  Path
	Err   error
}

// Synchronizer owns the resolved path. Sync and Apply must be called from a
// single goroutine; Resolve only reads immutable configuration and may run
// anywhere.
//
// The provider cannot be cancelled, so every waypoint change mints a new
// token and only a Result carrying the current token is ever applied.
type Synchronizer struct {
	provider Provider
	timeout  time.Duration
	log      *slog.Logger

	waypoints []catalog.Coordinate
	fallback  []catalog.Coordinate
	token     uuid.UUID
	path      Path
	source    Source
}

// NewSynchronizer returns an idle synchronizer. A nil provider behaves as a
// provider that always fails. timeout <= 0 means no deadline.
func NewSynchronizer(provider Provider, timeout time.Duration, log *slog.Logger) *Synchronizer {
	if log == nil {
		log = slog.Default()
	}
	return &Synchronizer{provider: provider, timeout: timeout, log: log, source: SourceNone}
}

// Sync reconciles against the current waypoint list and the active tour's
// fallback path. It returns a Request to dispatch when a new computation is
// needed, or nil.
func (s *Synchronizer) Sync(waypoints, fallback []catalog.Coordinate) *Request {
	if len(waypoints) < 2 {
		if s.token != uuid.Nil || len(s.path) > 0 {
			s.log.Debug("route torn down", "waypoints", len(waypoints))
		}
		s.Reset()
		return nil
	}
	if slices.Equal(waypoints, s.waypoints) && slices.Equal(fallback, s.fallback) {
		return nil
	}

	s.waypoints = append([]catalog.Coordinate(nil), waypoints...)
	s.fallback = append([]catalog.Coordinate(nil), fallback...)
	s.token = uuid.New()
	s.path = nil
	s.source = SourceNone

	if s.provider == nil {
		s.useFallback()
		s.token = uuid.Nil
		return nil
	}
	s.log.Debug("route requested", "token", s.token, "waypoints", len(waypoints))
	return &Request{
		Token:     s.token,
		Waypoints: append([]catalog.Coordinate(nil), s.waypoints...),
		Mode:      ModePedestrian,
	}
}

// Resolve runs the provider for req.
func (s *Synchronizer) Resolve(ctx context.Context, req Request) Result {
	if s.provider == nil {
		return Result{Token: req.Token, Err: ErrNoRoute}
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	path, err := s.provider.Route(ctx, req.Waypoints, req.Mode)
	return Result{Token: req.Token, Path: path, Err: err}
}

// Apply adopts res if its token is still current and reports whether it did.
// A failure falls back to the tour's precomputed path, or to no path.
func (s *Synchronizer) Apply(res Result) bool {
	if res.Token == uuid.Nil || res.Token != s.token {
		s.log.Debug("stale route result discarded", "token", res.Token)
		return false
	}
	s.token = uuid.Nil
	if res.Err == nil && len(res.Path) > 0 {
		s.path = append(Path(nil), res.Path...)
		s.source = SourceComputed
		return true
	}
	err := res.Err
	if err == nil {
		err = ErrNoRoute
	}
	s.log.Warn("route computation failed", "err", err, "fallback", len(s.fallback) > 0)
	s.useFallback()
	return true
}

// Reset drops the waypoints, any in-flight token and the path.
func (s *Synchronizer) Reset() {
	s.waypoints = nil
	s.fallback = nil
	s.token = uuid.Nil
	s.path = nil
	s.source = SourceNone
}

// Path returns the resolved path. Callers must not modify it.
func (s *Synchronizer) Path() Path { return s.path }

// Source reports the origin of Path.
func (s *Synchronizer) Source() Source { return s.source }

// Pending reports whether a request is in flight.
func (s *Synchronizer) Pending() bool { return s.token != uuid.Nil }

func (s *Synchronizer) useFallback() {
	if len(s.fallback) == 0 {
		s.path = nil
		s.source = SourceNone
		return
	}
	s.path = append(Path(nil), s.fallback...)
	s.source = SourceFallback
}
