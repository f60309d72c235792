package navigator

import (
	"testing"
	"time"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// fakeObserver records every event fired during a test, for assertions.
type fakeObserver struct {
	turns          [][3]*Turn
	turnRounds     int
	newRoutes      []*route.Route
	positionKnown  int
	positionLost   int
	added          []NearbyObject
	updated        []NearbyObject
	removed        []NearbyObject
}

func (f *fakeObserver) OnTurn(first, second, continuation *Turn) {
	f.turns = append(f.turns, [3]*Turn{first, second, continuation})
}
func (f *fakeObserver) OnTurnRound()             { f.turnRounds++ }
func (f *fakeObserver) OnNewRoute(r *route.Route) { f.newRoutes = append(f.newRoutes, r) }
func (f *fakeObserver) OnPositionKnown()          { f.positionKnown++ }
func (f *fakeObserver) OnPositionUnknown()        { f.positionLost++ }
func (f *fakeObserver) OnAddNearbyObject(obj NearbyObject)    { f.added = append(f.added, obj) }
func (f *fakeObserver) OnUpdateNearbyObject(obj NearbyObject) { f.updated = append(f.updated, obj) }
func (f *fakeObserver) OnRemoveNearbyObject(obj NearbyObject) { f.removed = append(f.removed, obj) }

var _ Observer = (*fakeObserver)(nil)

type fakeNearbyObject struct {
	id    string
	pos   geo.MapPoint
	rng   float64
}

func (o fakeNearbyObject) ID() string             { return o.id }
func (o fakeNearbyObject) Position() geo.MapPoint { return o.pos }
func (o fakeNearbyObject) RangeMeters() float64   { return o.rng }

func mustArc(t *testing.T, rt roadtype.RoadType) roadtype.ArcAttributes {
	t.Helper()
	a, err := roadtype.NewArcAttributes(rt, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

// buildStraightRoute returns a 300m two-segment straight route along the
// x-axis, with a right turn descriptor on the first segment.
func buildStraightRoute(t *testing.T) *route.Route {
	t.Helper()
	b := route.NewBuilder()
	seg1 := route.Segment{
		DistanceMeters: 100,
		TimeSeconds:    10,
		Attr:           mustArc(t, roadtype.Residential),
		Name:           "Main St",
		Path:           geo.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Right},
	}
	seg2 := route.Segment{
		DistanceMeters: 200,
		TimeSeconds:    20,
		Attr:           mustArc(t, roadtype.Residential),
		Name:           "Oak Ave",
		Path:           geo.Contour{{X: 100, Y: 0}, {X: 300, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Ahead},
	}
	if err := b.AppendSegment(seg1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendSegment(seg2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b.Finish(profile.NewCarProfile())
}

func fix(x, y float64, tm time.Time) Fix {
	return Fix{Time: tm, Position: geo.MapPoint{X: x, Y: y}, Valid: ValidPosition | ValidTime}
}

func TestNavigatorSetRouteTransitionsToNoPosition(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	r := buildStraightRoute(t)
	n.SetRoute(r)

	if n.State() != StateNoPosition {
		t.Errorf("State() = %v, want %v", n.State(), StateNoPosition)
	}
	if len(obs.newRoutes) != 1 {
		t.Fatalf("expected exactly one OnNewRoute event, got %d", len(obs.newRoutes))
	}
}

func TestNavigatorOnFixTracksProgressOnRoute(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	n.SetRoute(buildStraightRoute(t))

	base := time.Now()
	n.OnFix(fix(0, 0, base))
	if n.State() != StateOnRoute {
		t.Fatalf("State() = %v, want %v", n.State(), StateOnRoute)
	}
	if obs.positionKnown != 1 {
		t.Errorf("positionKnown = %d, want 1", obs.positionKnown)
	}

	n.OnFix(fix(50, 0, base.Add(time.Second)))
	if got := n.DistanceAlongRouteMeters(); got != 50 {
		t.Errorf("DistanceAlongRouteMeters() = %v, want 50", got)
	}
}

func TestNavigatorOnFixIgnoresSubMinimumMovement(t *testing.T) {
	n := New(DefaultParam(), nil)
	n.SetRoute(buildStraightRoute(t))

	base := time.Now()
	n.OnFix(fix(0, 0, base))
	before := n.DistanceAlongRouteMeters()

	// Movement below MinimumFixDistanceMeters (5m) is ignored.
	n.OnFix(fix(0.001, 0, base.Add(time.Second)))
	if got := n.DistanceAlongRouteMeters(); got != before {
		t.Errorf("DistanceAlongRouteMeters() changed on sub-minimum movement: got %v, want %v", got, before)
	}
}

func TestNavigatorOffRouteAndReRoute(t *testing.T) {
	param := DefaultParam()
	param.RouteTimeToleranceSeconds = 5
	n := New(param, nil)
	n.SetRoute(buildStraightRoute(t))

	base := time.Now()
	// 100m perpendicular from the route, far beyond RouteDistanceToleranceMeters.
	n.OnFix(fix(10, 100, base))
	if n.State() != StateOffRoute {
		t.Fatalf("State() = %v, want %v", n.State(), StateOffRoute)
	}

	// Still off-route after the re-route tolerance window elapses.
	n.OnFix(fix(20, 100, base.Add(10*time.Second)))
	if n.State() != StateReRouteNeeded {
		t.Fatalf("State() = %v, want %v", n.State(), StateReRouteNeeded)
	}
}

func TestNavigatorAcceptReRoute(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	n.SetRoute(buildStraightRoute(t))
	n.AcceptReRoute(buildStraightRoute(t))

	if n.State() != StateReRouteDone {
		t.Errorf("State() = %v, want %v", n.State(), StateReRouteDone)
	}
	if len(obs.newRoutes) != 2 {
		t.Errorf("expected two OnNewRoute events (initial + reroute), got %d", len(obs.newRoutes))
	}
}

func TestNavigatorArrival(t *testing.T) {
	n := New(DefaultParam(), nil)
	n.SetRoute(buildStraightRoute(t))

	base := time.Now()
	n.OnFix(fix(0, 0, base))
	n.OnFix(fix(299, 0, base.Add(time.Second)))
	if n.State() != StateArrived {
		t.Errorf("State() = %v, want %v", n.State(), StateArrived)
	}
}

func TestNavigatorEmitsUpcomingTurn(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	n.SetRoute(buildStraightRoute(t))

	base := time.Now()
	// 10m before the segment-1/segment-2 boundary, where the first turn is.
	n.OnFix(fix(90, 0, base))
	n.OnFix(fix(95, 0, base.Add(time.Second)))

	if len(obs.turns) == 0 {
		t.Fatal("expected at least one OnTurn event")
	}
	// A second fix approaching the same turn should not refire the event if
	// the bucketed distance doesn't change the turn-set key.
	first := obs.turns[0]
	if first[0] == nil {
		t.Fatal("expected a first upcoming turn to be reported")
	}
}

func TestNavigatorNearbyObjectTransitions(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	n.SetRoute(buildStraightRoute(t))

	obj := fakeNearbyObject{id: "hazard:1", pos: geo.MapPoint{X: 50, Y: 0}, rng: 20}
	n.AddNearbyObject(obj)

	base := time.Now()
	// Far from the object: not yet in range.
	n.OnFix(fix(0, 0, base))
	if len(obs.added) != 0 {
		t.Fatalf("expected no OnAddNearbyObject yet, got %d", len(obs.added))
	}

	// Within range.
	n.OnFix(fix(45, 0, base.Add(time.Second)))
	if len(obs.added) != 1 {
		t.Fatalf("expected one OnAddNearbyObject event, got %d", len(obs.added))
	}

	// Back out of range.
	n.OnFix(fix(90, 0, base.Add(2*time.Second)))
	if len(obs.removed) != 1 {
		t.Fatalf("expected one OnRemoveNearbyObject event, got %d", len(obs.removed))
	}
}

func TestNavigatorRemoveNearbyObjectWhileInRange(t *testing.T) {
	obs := &fakeObserver{}
	n := New(DefaultParam(), obs)
	n.SetRoute(buildStraightRoute(t))

	obj := fakeNearbyObject{id: "hazard:1", pos: geo.MapPoint{X: 0, Y: 0}, rng: 20}
	n.AddNearbyObject(obj)
	n.OnFix(fix(0, 0, time.Now()))
	if len(obs.added) != 1 {
		t.Fatalf("expected the object to be in range, got %d add events", len(obs.added))
	}

	n.RemoveNearbyObject(obj.ID())
	if len(obs.removed) != 1 {
		t.Errorf("expected OnRemoveNearbyObject when removing an in-range object, got %d", len(obs.removed))
	}
}

func TestNavigatorOnFixNoOpWithoutRoute(t *testing.T) {
	n := New(DefaultParam(), nil)
	n.OnFix(fix(0, 0, time.Now()))
	if n.State() != StateNone {
		t.Errorf("State() = %v, want %v (no route installed)", n.State(), StateNone)
	}
}

func TestNavigatorInvalidPositionTransitionsToNoPosition(t *testing.T) {
	n := New(DefaultParam(), nil)
	n.SetRoute(buildStraightRoute(t))
	n.OnFix(fix(0, 0, time.Now()))

	n.OnFix(Fix{Time: time.Now(), Valid: ValidTime})
	if n.State() != StateNoPosition {
		t.Errorf("State() = %v, want %v", n.State(), StateNoPosition)
	}
}
