// Package router plans routes across a graph.Graph according to a
// profile.Profile, producing a route.Route. Several search strategies are
// available, from a plain A* search to a turn-penalty-aware variant and a
// contraction-hierarchy fast path, plus adapters over external routing
// services for when no local graph is loaded.
package router

import (
	"context"
	"fmt"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
)

// Type names the search strategy a Router implements, mirroring the
// router-polymorphism design note: callers depend on the Router interface,
// never on a concrete strategy, so the strategy can be swapped (or a faster
// one substituted once its prerequisites are built) without touching call
// sites.
type Type int

const (
	// TypeStandardAStar runs plain A* with a turn-time cost charged at
	// expansion time but no turn-expanded state space; cheapest to run, at
	// the cost of occasionally under-counting a turn restriction that
	// depends on the specific arc used to enter a junction.
	TypeStandardAStar Type = iota
	// TypeTurnExpandedAStar searches over (node, incoming arc) states so
	// that turn restrictions and turn-time costs are exact at every
	// junction, at higher memory cost.
	TypeTurnExpandedAStar
	// TypeContractionHierarchy answers queries from a prebuilt hierarchy
	// index when available, falling back to TypeTurnExpandedAStar otherwise.
	TypeContractionHierarchy
)

// Router plans a route between two points via zero or more intermediate via
// points, for one profile.
type Router interface {
	Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error)
}

// SelectRouter returns the Router implementation most appropriate for a
// graph and requested Type: a contraction hierarchy request without a
// built CHIndex degrades to the turn-expanded search rather than failing,
// since a route is still better served late than not at all.
func SelectRouter(g *graph.Graph, t Type, ch *CHIndex) Router {
	switch t {
	case TypeContractionHierarchy:
		if ch != nil && ch.Built() {
			return &ContractionHierarchyRouter{Graph: g, Index: ch}
		}
		return &TurnExpandedAStarRouter{Graph: g}
	case TypeTurnExpandedAStar:
		return &TurnExpandedAStarRouter{Graph: g}
	default:
		return &StandardAStarRouter{Graph: g}
	}
}

// planVia breaks a multi-point route into successive pairwise legs planned
// by planLeg, concatenating the resulting route.Route values and bumping the
// section counter between legs so route.Builder's non-decreasing-section
// invariant holds.
func planVia(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile, planLeg func(context.Context, geo.MapPoint, geo.MapPoint, int, profile.Profile) ([]route.Segment, error)) (*route.Route, error) {
	points := append([]geo.MapPoint{start}, via...)
	points = append(points, end)

	b := route.NewBuilder()
	for i := 1; i < len(points); i++ {
		segs, err := planLeg(ctx, points[i-1], points[i], i-1, p)
		if err != nil {
			return nil, fmt.Errorf("router: leg %d: %w", i-1, err)
		}
		for _, s := range segs {
			if err := b.AppendSegment(s); err != nil {
				return nil, err
			}
		}
	}
	return b.Finish(p), nil
}

// errNoPath is returned by a search strategy when no usable path connects
// the requested points under the given profile.
type errNoPath struct{}

func (errNoPath) Error() string { return "router: no path found" }
