package progress

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/jask/audioguide/internal/catalog"
)

func testStore() *catalog.Store {
	stops := []catalog.Stop{
		{ID: "s1", Order: 1, Coordinate: catalog.Coordinate{Lat: 56.32, Lon: 44.00}},
		{ID: "s2", Order: 2, Coordinate: catalog.Coordinate{Lat: 56.33, Lon: 44.01}},
		{ID: "s3", Order: 3, Coordinate: catalog.Coordinate{Lat: 56.34, Lon: 44.02}},
	}
	tours := []catalog.Tour{
		{ID: "short", StopIDs: []string{"s1", "s2"}},
		{ID: "gap", StopIDs: []string{"s3", "ghost"}},
		{ID: "ghosts", StopIDs: []string{"ghost"}},
	}
	return catalog.NewStore(stops, tours)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) addDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTracker(store *catalog.Store) (*Tracker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	tr := NewTracker(store, 0, nil)
	tr.SetClock(clock.Now)
	return tr, clock
}

func TestRecordVisitIsIdempotent(t *testing.T) {
	tr, _ := newTracker(nil)

	tr.RecordVisit("s1")
	tr.RecordVisit("s1")

	s := tr.State()
	require.Equal(t, []string{"s1"}, s.Visited)
	require.Equal(t, DefaultPointsPerVisit, s.Points)
	require.True(t, s.HasVisited("s1"))
	require.False(t, s.HasVisited("s2"))

	tr.RecordVisit("")
	require.Equal(t, 1, tr.State().VisitedCount())
}

func TestCustomPointsPerVisit(t *testing.T) {
	tr := NewTracker(nil, 25, nil)
	tr.RecordVisit("a")
	tr.RecordVisit("b")
	require.Equal(t, 50, tr.State().Points)
}

func TestStateIsACopy(t *testing.T) {
	tr, _ := newTracker(testStore())
	tr.RecordVisit("s1")
	s := tr.State()
	s.Visited[0] = "mutated"
	require.Equal(t, "s1", tr.State().Visited[0])
}

func TestStreak(t *testing.T) {
	tr, clock := newTracker(nil)

	tr.RecordVisit("a")
	require.Equal(t, 1, tr.State().Streak)

	// later on the same day
	clock.now = clock.now.Add(8 * time.Hour)
	tr.RecordVisit("b")
	require.Equal(t, 1, tr.State().Streak)

	clock.addDays(1)
	tr.RecordVisit("c")
	require.Equal(t, 2, tr.State().Streak)

	clock.addDays(1)
	tr.RecordVisit("d")
	require.Equal(t, 3, tr.State().Streak)

	// a repeated visit does not touch the streak
	clock.addDays(1)
	tr.RecordVisit("d")
	require.Equal(t, 3, tr.State().Streak)

	clock.addDays(2)
	tr.RecordVisit("e")
	require.Equal(t, 1, tr.State().Streak)
	require.Equal(t, time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC), tr.State().LastVisitDay)
}

func TestCompletedTours(t *testing.T) {
	tr, _ := newTracker(testStore())

	tr.RecordVisit("s1")
	require.Empty(t, tr.State().CompletedTours)

	tr.RecordVisit("s2")
	require.Equal(t, []string{"short"}, tr.State().CompletedTours)

	// unresolvable ids are skipped; a tour with nothing resolvable never completes
	tr.RecordVisit("s3")
	require.Equal(t, []string{"short", "gap"}, tr.State().CompletedTours)
	require.False(t, tr.State().HasCompleted("ghosts"))
}

func TestVisitsProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	names := []string{"a", "b", "c", "d", "e"}
	ids := gen.SliceOf(gen.IntRange(0, len(names)-1)).Map(func(idx []int) []string {
		out := make([]string, len(idx))
		for i, n := range idx {
			out[i] = names[n]
		}
		return out
	})

	properties.Property("points track distinct visits", prop.ForAll(
		func(visits []string) bool {
			tr := NewTracker(nil, 0, nil)
			distinct := map[string]struct{}{}
			for _, id := range visits {
				tr.RecordVisit(id)
				distinct[id] = struct{}{}
			}
			s := tr.State()
			return s.VisitedCount() == len(distinct) &&
				s.Points == len(distinct)*DefaultPointsPerVisit
		},
		ids,
	))

	properties.Property("a repeated visit changes nothing", prop.ForAll(
		func(visits []string) bool {
			if len(visits) == 0 {
				return true
			}
			tr := NewTracker(nil, 0, nil)
			for _, id := range visits {
				tr.RecordVisit(id)
			}
			before := tr.State()
			tr.RecordVisit(visits[len(visits)-1])
			after := tr.State()
			return before.Points == after.Points && before.VisitedCount() == after.VisitedCount()
		},
		ids,
	))

	properties.TestingRun(t)
}
