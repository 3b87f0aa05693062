package tui

import (
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/jask/audioguide/internal/catalog"
	"github.com/jask/audioguide/internal/navigation"
	"github.com/jask/audioguide/internal/routing"
)

const (
	glyphEmpty   = " "
	glyphPath    = "•"
	glyphActive  = "◉"
	glyphOnTour  = "●"
	glyphNeutral = "○"
)

// canvas is a character grid covering a lon/lat bound, north up.
type canvas struct {
	w, h  int
	bound orb.Bound
	cells [][]string
}

func newCanvas(w, h int, pts []orb.Point) *canvas {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	var b orb.Bound
	if len(pts) > 0 {
		b = orb.MultiPoint(pts).Bound()
	}
	span := math.Max(b.Right()-b.Left(), b.Top()-b.Bottom())
	b = b.Pad(span*0.05 + 1e-4)

	cells := make([][]string, h)
	for y := range cells {
		cells[y] = make([]string, w)
		for x := range cells[y] {
			cells[y][x] = glyphEmpty
		}
	}
	return &canvas{w: w, h: h, bound: b, cells: cells}
}

// project maps p to a cell. ok is false outside the bound.
func (c *canvas) project(p orb.Point) (x, y int, ok bool) {
	if !c.bound.Contains(p) {
		return 0, 0, false
	}
	fx := (p.Lon() - c.bound.Left()) / (c.bound.Right() - c.bound.Left())
	fy := (c.bound.Top() - p.Lat()) / (c.bound.Top() - c.bound.Bottom())
	x = int(math.Round(fx * float64(c.w-1)))
	y = int(math.Round(fy * float64(c.h-1)))
	return x, y, true
}

func (c *canvas) set(x, y int, s string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = s
}

// line draws a straight segment between a and b (Bresenham).
func (c *canvas) line(a, b orb.Point, s string) {
	x0, y0, ok0 := c.project(a)
	x1, y1, ok1 := c.project(b)
	if !ok0 || !ok1 {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, s)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) String() string {
	rows := make([]string, len(c.cells))
	for y, row := range c.cells {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func point(c catalog.Coordinate) orb.Point { return orb.Point{c.Lon, c.Lat} }

// drawMap renders every stop and the resolved path onto a w×h canvas. Stops
// are drawn over the path.
func drawMap(w, h int, th theme, stops []catalog.Stop, state navigation.State, path routing.Path, source routing.Source) string {
	pts := make([]orb.Point, 0, len(stops)+len(path))
	for _, s := range stops {
		pts = append(pts, point(s.Coordinate))
	}
	for _, c := range path {
		pts = append(pts, point(c))
	}
	cv := newCanvas(w, h, pts)

	pathStyle := th.PathComputed
	if source == routing.SourceFallback {
		pathStyle = th.PathFallback
	}
	dot := pathStyle.Render(glyphPath)
	for i := 1; i < len(path); i++ {
		cv.line(point(path[i-1]), point(path[i]), dot)
	}

	// active stop last so it is never hidden by a neighbour
	var active []catalog.Stop
	for _, s := range stops {
		switch navigation.ResolveVisual(s, state) {
		case navigation.VisualSelected:
			active = append(active, s)
		case navigation.VisualOnTour:
			x, y, _ := cv.project(point(s.Coordinate))
			cv.set(x, y, th.StopOnTour.Render(glyphOnTour))
		default:
			x, y, _ := cv.project(point(s.Coordinate))
			cv.set(x, y, th.StopNeutral.Render(glyphNeutral))
		}
	}
	for _, s := range active {
		x, y, _ := cv.project(point(s.Coordinate))
		cv.set(x, y, th.StopActive.Render(glyphActive))
	}
	return cv.String()
}
