package routing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/jask/audioguide/internal/catalog"
)

func countingProvider(calls *atomic.Int32, err error) Provider {
	return providerFunc(func(ctx context.Context, wps []catalog.Coordinate, mode TravelMode) (Path, error) {
		calls.Add(1)
		if err != nil {
			return nil, err
		}
		return Straight{}.Route(ctx, wps, mode)
	})
}

func TestCachedReusesGeometry(t *testing.T) {
	var calls atomic.Int32
	p, err := NewCached(countingProvider(&calls, nil), 4)
	require.NoError(t, err)

	wps := []catalog.Coordinate{s1, s2}
	first, err := p.Route(context.Background(), wps, ModePedestrian)
	require.NoError(t, err)
	first[0] = s3 // callers may not corrupt the cache

	second, err := p.Route(context.Background(), wps, ModePedestrian)
	require.NoError(t, err)
	require.Equal(t, Path{s1, s2}, second)
	require.EqualValues(t, 1, calls.Load())

	_, err = p.Route(context.Background(), []catalog.Coordinate{s2, s1}, ModePedestrian)
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestCachedSkipsFailures(t *testing.T) {
	var calls atomic.Int32
	p, err := NewCached(countingProvider(&calls, errors.New("down")), 4)
	require.NoError(t, err)

	wps := []catalog.Coordinate{s1, s2}
	_, err = p.Route(context.Background(), wps, ModePedestrian)
	require.Error(t, err)
	_, err = p.Route(context.Background(), wps, ModePedestrian)
	require.Error(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestCachedDisabled(t *testing.T) {
	next := Straight{}
	p, err := NewCached(next, 0)
	require.NoError(t, err)
	require.Equal(t, Provider(next), p)
}

func TestLimitedHonoursContext(t *testing.T) {
	var calls atomic.Int32
	l := NewLimited(countingProvider(&calls, nil), 0.001)

	_, err := l.Route(context.Background(), []catalog.Coordinate{s1, s2}, ModePedestrian)
	require.NoError(t, err)

	// the burst is spent; the next token is minutes away
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Route(ctx, []catalog.Coordinate{s1, s2}, ModePedestrian)
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestLimitedUnlimited(t *testing.T) {
	var calls atomic.Int32
	l := NewLimited(countingProvider(&calls, nil), 0)
	for i := 0; i < 5; i++ {
		_, err := l.Route(context.Background(), []catalog.Coordinate{s1, s2}, ModePedestrian)
		require.NoError(t, err)
	}
	require.EqualValues(t, 5, calls.Load())
}

func TestPathGeometry(t *testing.T) {
	ls := orb.LineString{{44.0075, 56.3269}, {44.0085, 56.3280}}
	p := FromLineString(ls)
	require.Equal(t, Path{s1, s2}, p)
	require.Equal(t, ls, p.LineString())

	// about 135 m between the two points
	require.InDelta(t, 135, p.Length(), 15)
	require.Zero(t, Path{s1}.Length())
}
