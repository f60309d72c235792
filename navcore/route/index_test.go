package route

import (
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
)

func buildTestRoute(t *testing.T) *Route {
	t.Helper()
	b := NewBuilder()
	if err := b.AppendSegment(straightSegment("Main St", 100, 10, 0, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := straightSegment("Main St", 100, 10, 0, true)
	second.Path = geo.Contour{{X: 100, Y: 0}, {X: 200, Y: 0}}
	if err := b.AppendSegment(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b.Finish(profile.NewCarProfile())
}

func TestIndexNearestSegment(t *testing.T) {
	r := buildTestRoute(t)
	idx := NewIndex(r)

	info, found := idx.NearestSegment(geo.MapPoint{X: 50, Y: 5}, -1, -1)
	if !found {
		t.Fatal("expected a nearest segment to be found")
	}
	if info.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %d, want 0", info.SegmentIndex)
	}
	if info.DistanceMeters != 5 {
		t.Errorf("DistanceMeters = %v, want 5", info.DistanceMeters)
	}
	if info.DistanceAlongRouteMeters != 50 {
		t.Errorf("DistanceAlongRouteMeters = %v, want 50", info.DistanceAlongRouteMeters)
	}

	info2, found2 := idx.NearestSegment(geo.MapPoint{X: 150, Y: 2}, -1, -1)
	if !found2 {
		t.Fatal("expected a nearest segment to be found")
	}
	if info2.SegmentIndex != 1 {
		t.Errorf("SegmentIndex = %d, want 1", info2.SegmentIndex)
	}
	if info2.DistanceAlongRouteMeters != 150 {
		t.Errorf("DistanceAlongRouteMeters = %v, want 150", info2.DistanceAlongRouteMeters)
	}
}

func TestIndexNearestSegmentSearchWindow(t *testing.T) {
	r := buildTestRoute(t)
	idx := NewIndex(r)

	// A hint far from segment 1's actual position (150) excludes it from the
	// search window, so segment 1 must not be returned even though it is
	// geometrically closest to the query point.
	info, found := idx.NearestSegment(geo.MapPoint{X: 150, Y: 2}, -1, 50000)
	if found && info.SegmentIndex == 1 {
		t.Error("expected the distant hint to exclude segment 1 from the search window")
	}
}

func TestIndexPointAtDistance(t *testing.T) {
	r := buildTestRoute(t)
	idx := NewIndex(r)

	if got := idx.PointAtDistance(-10); got != (geo.MapPoint{X: 0, Y: 0}) {
		t.Errorf("PointAtDistance(-10) = %v, want {0 0}", got)
	}
	if got := idx.PointAtDistance(1000); got != (geo.MapPoint{X: 200, Y: 0}) {
		t.Errorf("PointAtDistance(overshoot) = %v, want {200 0}", got)
	}
	if got := idx.PointAtDistance(150); got != (geo.MapPoint{X: 150, Y: 0}) {
		t.Errorf("PointAtDistance(150) = %v, want {150 0}", got)
	}
}

func TestIndexPointAtTime(t *testing.T) {
	r := buildTestRoute(t)
	idx := NewIndex(r)

	if got := idx.PointAtTime(-5); got != (geo.MapPoint{X: 0, Y: 0}) {
		t.Errorf("PointAtTime(-5) = %v, want {0 0}", got)
	}
	if got := idx.PointAtTime(1000); got != (geo.MapPoint{X: 200, Y: 0}) {
		t.Errorf("PointAtTime(overshoot) = %v, want {200 0}", got)
	}
	if got := idx.PointAtTime(15); got != (geo.MapPoint{X: 150, Y: 0}) {
		t.Errorf("PointAtTime(15) = %v, want {150 0}", got)
	}
}

func TestIndexEmptyRoute(t *testing.T) {
	r := &Route{Profile: profile.NewCarProfile()}
	idx := NewIndex(r)

	if got := idx.PointAtDistance(10); got != (geo.MapPoint{}) {
		t.Errorf("PointAtDistance on empty route = %v, want zero value", got)
	}
	if got := idx.PointAtTime(10); got != (geo.MapPoint{}) {
		t.Errorf("PointAtTime on empty route = %v, want zero value", got)
	}
	if _, found := idx.NearestSegment(geo.MapPoint{}, -1, -1); found {
		t.Error("expected NearestSegment to report not found on an empty route")
	}
}
