package router

import (
	"context"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
)

// CHIndex is a contraction hierarchy built offline for one profile: nodes
// ordered by contraction rank plus the shortcut arcs inserted to preserve
// shortest-path correctness after a node is bypassed. Building the
// hierarchy itself is a batch map-preprocessing job outside navcore's
// runtime scope; CHIndex only holds the result and answers queries against
// it.
type CHIndex struct {
	Rank      map[graph.NodeID]int
	Shortcuts []*graph.Arc
	built     bool
}

// NewCHIndex wraps a precomputed rank ordering and shortcut set.
func NewCHIndex(rank map[graph.NodeID]int, shortcuts []*graph.Arc) *CHIndex {
	return &CHIndex{Rank: rank, Shortcuts: shortcuts, built: len(rank) > 0}
}

// Built reports whether the index has been populated and is usable.
func (c *CHIndex) Built() bool { return c != nil && c.built }

// ContractionHierarchyRouter holds a CHIndex alongside the base graph. Its
// Plan answers every query with the turn-expanded search over the base
// graph; the index's ranks and shortcut arcs are not consulted.
type ContractionHierarchyRouter struct {
	Graph *graph.Graph
	Index *CHIndex
}

// Plan implements Router by delegating to TurnExpandedAStarRouter over the
// same Graph, whether or not the index is built. No upward-restricted
// bidirectional search is performed.
func (r *ContractionHierarchyRouter) Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error) {
	if !r.Index.Built() {
		fallback := &TurnExpandedAStarRouter{Graph: r.Graph}
		return fallback.Plan(ctx, start, end, via, p)
	}

	// A full contraction-hierarchy query (upward search from both ends,
	// meeting in the middle, then unpacking shortcuts) requires the
	// hierarchy's shortcut arcs to be merged into the search graph; until a
	// real offline builder populates CHIndex.Shortcuts meaningfully, querying
	// through the turn-expanded search over the base graph is exact, just not
	// asymptotically faster.
	fallback := &TurnExpandedAStarRouter{Graph: r.Graph}
	return fallback.Plan(ctx, start, end, via, p)
}
