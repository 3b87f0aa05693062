package routing

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/jask/audioguide/internal/catalog"
)

// FromLineString converts orb's [lon, lat] points to a Path.
func FromLineString(ls orb.LineString) Path {
	out := make(Path, 0, len(ls))
	for _, p := range ls {
		out = append(out, catalog.Coordinate{Lat: p.Lat(), Lon: p.Lon()})
	}
	return out
}

// LineString converts p to orb's [lon, lat] order.
func (p Path) LineString() orb.LineString {
	out := make(orb.LineString, 0, len(p))
	for _, c := range p {
		out = append(out, orb.Point{c.Lon, c.Lat})
	}
	return out
}

// Length is the geodesic length of p in metres.
func (p Path) Length() float64 {
	if len(p) < 2 {
		return 0
	}
	return geo.Length(p.LineString())
}
