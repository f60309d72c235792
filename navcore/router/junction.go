package router

import (
	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// arcHeadingOut returns the initial heading of an arc's geometry, the
// direction a turn at its origin junction is measured against.
func arcHeadingOut(a *graph.Arc) float64 {
	if len(a.Geometry) < 2 {
		return 0
	}
	return geo.PlanarHeading(a.Geometry[0], a.Geometry[1])
}

// countAlternatives reports how many other roads leaving the junction at the
// end of arc branch close enough to next's heading, per turn.IsFork, to
// count as a fork rather than an unrelated side street -- split by which
// side of next they branch to. The arc doubling back the way arc came from
// is excluded, since a U-turn isn't a routing alternative at a junction.
func countAlternatives(g *graph.Graph, arc, next *graph.Arc) (left, right int) {
	if next == nil {
		return 0, 0
	}
	taken := arcHeadingOut(next)
	for _, alt := range g.Outgoing(arc.To) {
		if alt.ID == next.ID || alt.To == arc.From {
			continue
		}
		angle := geo.TurnAngle(taken, arcHeadingOut(alt))
		if !turn.IsFork(angle) {
			continue
		}
		if angle > 0 {
			right++
		} else if angle < 0 {
			left++
		}
	}
	return left, right
}

// roundaboutState derives a segment's roundabout participation, and, when
// leaving, the exit number -- the count of roundabout legs traversed since
// entry -- from whether the current and next arc are roundabout segments.
// exitCount is threaded by the caller across consecutive arcs of one route.
func roundaboutState(arc, next *graph.Arc, exitCount *int) (turn.RoundaboutState, int) {
	on := arc.Attr.IsRoundabout()
	nextOn := next != nil && next.Attr.IsRoundabout()
	switch {
	case on && nextOn:
		*exitCount++
		return turn.OnRoundabout, 0
	case on && !nextOn:
		*exitCount++
		n := *exitCount
		*exitCount = 0
		return turn.LeaveRoundabout, n
	case !on && nextOn:
		return turn.EnterRoundabout, 0
	default:
		return turn.NotRoundabout, 0
	}
}
