package route

import (
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

func straightSegment(name string, distance, time float64, section int, continueAhead bool) Segment {
	return Segment{
		DistanceMeters: distance,
		TimeSeconds:    time,
		Attr:           mustArc(roadtype.Residential),
		Name:           name,
		Section:        section,
		Path:           geo.Contour{{X: 0, Y: 0}, {X: distance, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Ahead, Continue: continueAhead},
	}
}

func mustArc(rt roadtype.RoadType) roadtype.ArcAttributes {
	a, err := roadtype.NewArcAttributes(rt, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, 30, 0)
	if err != nil {
		panic(err)
	}
	return a
}

func TestBuilderAppendSegmentAggregates(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendSegment(straightSegment("Main St", 100, 10, 0, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendSegment(straightSegment("Main St", 50, 5, 0, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := b.Finish(profile.NewCarProfile())
	if r.DistanceMeters != 150 {
		t.Errorf("DistanceMeters = %v, want 150", r.DistanceMeters)
	}
	if r.TimeSeconds != 15 {
		t.Errorf("TimeSeconds = %v, want 15", r.TimeSeconds)
	}
	if len(r.Segments) != 2 {
		t.Errorf("len(Segments) = %d, want 2", len(r.Segments))
	}
}

func TestBuilderAppendSegmentRejectsOutOfOrderSections(t *testing.T) {
	b := NewBuilder()
	if err := b.AppendSegment(straightSegment("Main St", 100, 10, 1, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendSegment(straightSegment("Main St", 50, 5, 0, true)); err == nil {
		t.Error("expected error appending an earlier section after a later one")
	}
}

func TestRouteMergeAdjacent(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendSegment(straightSegment("Main St", 100, 10, 0, true))
	_ = b.AppendSegment(straightSegment("Main St", 50, 5, 0, true))
	// Different name breaks the merge run.
	other := straightSegment("Oak Ave", 30, 3, 0, true)
	other.Turn = turn.Descriptor{Type: turn.Left}
	_ = b.AppendSegment(other)

	r := b.Finish(profile.NewCarProfile())
	merged := r.MergeAdjacent()

	if len(merged.Segments) != 2 {
		t.Fatalf("len(merged.Segments) = %d, want 2", len(merged.Segments))
	}
	if merged.Segments[0].DistanceMeters != 150 {
		t.Errorf("first merged segment distance = %v, want 150", merged.Segments[0].DistanceMeters)
	}
	if merged.DistanceMeters != r.DistanceMeters {
		t.Errorf("merged total distance = %v, want %v", merged.DistanceMeters, r.DistanceMeters)
	}
}

func TestRouteMergeAdjacentEmptyRoute(t *testing.T) {
	r := &Route{Profile: profile.NewCarProfile()}
	merged := r.MergeAdjacent()
	if len(merged.Segments) != 0 {
		t.Errorf("expected empty merge result, got %d segments", len(merged.Segments))
	}
}

func TestRouteCopyWithoutRestrictedSegments(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendSegment(straightSegment("Main St", 100, 10, 0, true))

	footway := straightSegment("Footpath", 20, 30, 0, true)
	footway.Attr = mustArc(roadtype.Footway)
	footway.Restricted = true
	_ = b.AppendSegment(footway)

	r := b.Finish(profile.NewCarProfile())
	filtered := r.CopyWithoutRestrictedSegments()

	if len(filtered.Segments) != 1 {
		t.Fatalf("len(filtered.Segments) = %d, want 1", len(filtered.Segments))
	}
	if filtered.DistanceMeters != 100 {
		t.Errorf("filtered distance = %v, want 100", filtered.DistanceMeters)
	}
}

func TestRouteTollRoadDistance(t *testing.T) {
	b := NewBuilder()
	plain := straightSegment("Main St", 100, 10, 0, true)
	_ = b.AppendSegment(plain)

	tollArc, err := roadtype.NewArcAttributes(roadtype.Motorway, roadtype.GradientUp0, roadtype.OneWayForward, false, true, 120, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	toll := straightSegment("Highway", 200, 20, 0, true)
	toll.Attr = tollArc
	_ = b.AppendSegment(toll)

	r := b.Finish(profile.NewCarProfile())
	if got := r.TollRoadDistance(); got != 200 {
		t.Errorf("TollRoadDistance() = %v, want 200", got)
	}
}

func TestRouteInstructions(t *testing.T) {
	b := NewBuilder()
	_ = b.AppendSegment(straightSegment("Main St", 100, 10, 0, true))
	r := b.Finish(profile.NewCarProfile())

	instr := r.Instructions("en")
	if len(instr) != 1 {
		t.Fatalf("len(Instructions()) = %d, want 1", len(instr))
	}
	if want := "ahead for 100m"; instr[0] != want {
		t.Errorf("Instructions()[0] = %q, want %q", instr[0], want)
	}
}
