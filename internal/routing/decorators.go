package routing

import (
	"context"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/jask/audioguide/internal/catalog"
)

// Limited throttles calls to Next. Public OSRM servers allow about one
// request per second.
type Limited struct {
	Next    Provider
	Limiter *rate.Limiter
}

// NewLimited allows perSecond calls per second with a burst of one.
// perSecond <= 0 disables throttling.
func NewLimited(next Provider, perSecond float64) *Limited {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Limited{Next: next, Limiter: rate.NewLimiter(limit, 1)}
}

func (l *Limited) Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error) {
	if err := l.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.Next.Route(ctx, waypoints, mode)
}

// Cached remembers successful geometries per mode and waypoint list.
type Cached struct {
	Next  Provider
	cache *lru.Cache[string, Path]
}

// NewCached keeps up to size geometries. size <= 0 returns next unwrapped.
func NewCached(next Provider, size int) (Provider, error) {
	if size <= 0 {
		return next, nil
	}
	c, err := lru.New[string, Path](size)
	if err != nil {
		return nil, err
	}
	return &Cached{Next: next, cache: c}, nil
}

func (c *Cached) Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error) {
	key := cacheKey(waypoints, mode)
	if p, ok := c.cache.Get(key); ok {
		return append(Path(nil), p...), nil
	}
	p, err := c.Next.Route(ctx, waypoints, mode)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append(Path(nil), p...))
	return p, nil
}

func cacheKey(waypoints []catalog.Coordinate, mode TravelMode) string {
	var b strings.Builder
	b.WriteString(string(mode))
	for _, w := range waypoints {
		b.WriteByte(';')
		b.WriteString(strconv.FormatFloat(w.Lat, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(w.Lon, 'f', -1, 64))
	}
	return b.String()
}
