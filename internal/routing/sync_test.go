package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/audioguide/internal/catalog"
)

type providerFunc func(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error)

func (f providerFunc) Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error) {
	return f(ctx, waypoints, mode)
}

var (
	s1 = catalog.Coordinate{Lat: 56.3269, Lon: 44.0075}
	s2 = catalog.Coordinate{Lat: 56.3280, Lon: 44.0085}
	s3 = catalog.Coordinate{Lat: 56.3290, Lon: 44.0095}

	fallbackPath = []catalog.Coordinate{s1, {Lat: 56.3275, Lon: 44.0080}, s3}
)

func newSync() *Synchronizer {
	return NewSynchronizer(Straight{}, 0, nil)
}

func TestSyncIssuesPedestrianRequest(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	require.NotNil(t, req)
	require.NotEqual(t, uuid.Nil, req.Token)
	require.Equal(t, ModePedestrian, req.Mode)
	require.Equal(t, []catalog.Coordinate{s1, s2}, req.Waypoints)
	require.True(t, s.Pending())

	// same list again is not a change
	require.Nil(t, s.Sync([]catalog.Coordinate{s1, s2}, nil))
}

func TestSupersededResultIsDiscarded(t *testing.T) {
	s := newSync()
	first := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	second := s.Sync([]catalog.Coordinate{s1, s2, s3}, nil)
	require.NotNil(t, second)
	require.NotEqual(t, first.Token, second.Token)

	// W1 answers after W2 was sent
	require.False(t, s.Apply(Result{Token: first.Token, Path: Path{s1, s2}}))
	require.Empty(t, s.Path())
	require.Equal(t, SourceNone, s.Source())

	require.True(t, s.Apply(Result{Token: second.Token, Path: Path{s1, s2, s3}}))
	require.Equal(t, Path{s1, s2, s3}, s.Path())
	require.Equal(t, SourceComputed, s.Source())
	require.False(t, s.Pending())
}

func TestLateStaleResultCannotOverwrite(t *testing.T) {
	s := newSync()
	first := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	second := s.Sync([]catalog.Coordinate{s1, s2, s3}, fallbackPath)

	require.True(t, s.Apply(Result{Token: second.Token, Err: errors.New("boom")}))
	require.Equal(t, Path(fallbackPath), s.Path())
	require.Equal(t, SourceFallback, s.Source())

	// W1 success and failure both arrive late
	require.False(t, s.Apply(Result{Token: first.Token, Path: Path{s1, s2}}))
	require.False(t, s.Apply(Result{Token: first.Token, Err: errors.New("late")}))
	require.Equal(t, Path(fallbackPath), s.Path())
	require.Equal(t, SourceFallback, s.Source())

	// a duplicate delivery of the applied result is stale too
	require.False(t, s.Apply(Result{Token: second.Token, Path: Path{s2, s3}}))
}

func TestFailureWithoutFallbackClearsPath(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	require.True(t, s.Apply(Result{Token: req.Token, Err: ErrNoRoute}))
	require.Empty(t, s.Path())
	require.Equal(t, SourceNone, s.Source())
}

func TestEmptyGeometryCountsAsFailure(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2}, fallbackPath)
	require.True(t, s.Apply(Result{Token: req.Token}))
	require.Equal(t, SourceFallback, s.Source())
}

func TestSubMinimalWaypointsTearDown(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2}, fallbackPath)
	require.True(t, s.Apply(Result{Token: req.Token, Path: Path{s1, s2}}))
	require.NotEmpty(t, s.Path())

	pending := s.Sync([]catalog.Coordinate{s1, s3}, fallbackPath)
	require.NotNil(t, pending)

	require.Nil(t, s.Sync([]catalog.Coordinate{s1}, fallbackPath))
	require.Empty(t, s.Path())
	require.False(t, s.Pending())
	require.Equal(t, SourceNone, s.Source())

	// the in-flight answer for the torn-down list is ignored
	require.False(t, s.Apply(Result{Token: pending.Token, Path: Path{s1, s3}}))
	require.Empty(t, s.Path())

	require.Nil(t, s.Sync(nil, nil))
	require.Empty(t, s.Path())
}

func TestWaypointChangeClearsPreviousPath(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	s.Apply(Result{Token: req.Token, Path: Path{s1, s2}})

	next := s.Sync([]catalog.Coordinate{s2, s3}, nil)
	require.NotNil(t, next)
	require.Empty(t, s.Path(), "old geometry must not stay visible for a new waypoint set")
}

func TestFallbackChangeReissues(t *testing.T) {
	s := newSync()
	wps := []catalog.Coordinate{s1, s2}
	require.NotNil(t, s.Sync(wps, nil))
	require.NotNil(t, s.Sync(wps, fallbackPath))
}

func TestSyncAfterTeardownRequestsAgain(t *testing.T) {
	s := newSync()
	wps := []catalog.Coordinate{s1, s2}
	require.NotNil(t, s.Sync(wps, nil))
	s.Reset()
	require.NotNil(t, s.Sync(wps, nil))
}

func TestNilProviderFallsBackImmediately(t *testing.T) {
	s := NewSynchronizer(nil, 0, nil)
	require.Nil(t, s.Sync([]catalog.Coordinate{s1, s2}, fallbackPath))
	require.Equal(t, SourceFallback, s.Source())
	require.Equal(t, Path(fallbackPath), s.Path())
	require.False(t, s.Pending())

	res := s.Resolve(context.Background(), Request{Token: uuid.New()})
	require.ErrorIs(t, res.Err, ErrNoRoute)
}

func TestResolveCarriesTokenAndGeometry(t *testing.T) {
	s := newSync()
	req := s.Sync([]catalog.Coordinate{s1, s2, s3}, nil)
	res := s.Resolve(context.Background(), *req)
	require.Equal(t, req.Token, res.Token)
	require.NoError(t, res.Err)
	require.True(t, s.Apply(res))
	require.Equal(t, Path{s1, s2, s3}, s.Path())
}

func TestResolveAppliesTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context, _ []catalog.Coordinate, _ TravelMode) (Path, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s := NewSynchronizer(slow, 20*time.Millisecond, nil)
	req := s.Sync([]catalog.Coordinate{s1, s2}, fallbackPath)

	res := s.Resolve(context.Background(), *req)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
	require.True(t, s.Apply(res))
	require.Equal(t, SourceFallback, s.Source())
}

func TestOutOfOrderResolution(t *testing.T) {
	release := make(chan struct{})
	prov := providerFunc(func(ctx context.Context, wps []catalog.Coordinate, _ TravelMode) (Path, error) {
		if len(wps) == 2 {
			<-release
		}
		return Path(wps), nil
	})
	s := NewSynchronizer(prov, 0, nil)
	first := s.Sync([]catalog.Coordinate{s1, s2}, nil)
	second := s.Sync([]catalog.Coordinate{s1, s2, s3}, nil)

	firstDone := make(chan Result, 1)
	go func() { firstDone <- s.Resolve(context.Background(), *first) }()

	secondRes := s.Resolve(context.Background(), *second)
	require.True(t, s.Apply(secondRes))

	close(release)
	require.False(t, s.Apply(<-firstDone))
	require.Equal(t, Path{s1, s2, s3}, s.Path())
}
