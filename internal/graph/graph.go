// Package graph is the minimal in-memory weighted directed graph that stands
// in for the "out of scope" map database: enough surface for the router
// package to run A* and contraction-hierarchy style searches against, without
// re-specifying map file parsing.
package graph

import (
	"container/heap"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

// NodeID identifies a junction in the graph.
type NodeID int64

// ArcID identifies a directed arc.
type ArcID int64

// Arc is one directed edge of the road graph: the packed attribute word plus
// enough metadata to build a route.Segment from it.
type Arc struct {
	ID         ArcID
	From, To   NodeID
	Attr       roadtype.ArcAttributes
	Gradient   roadtype.GradientBin
	Geometry   geo.Contour
	Name       string
	Ref        string
	Signalized bool
	// JunctionName/JunctionRef describe the junction at the *start* of the arc.
	JunctionName string
	JunctionRef  string
}

// Graph is a directed multigraph keyed by NodeID, with arcs stored by source node.
type Graph struct {
	position map[NodeID]geo.MapPoint
	outgoing map[NodeID][]*Arc
	incoming map[NodeID][]*Arc
	arcs     map[ArcID]*Arc
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		position: make(map[NodeID]geo.MapPoint),
		outgoing: make(map[NodeID][]*Arc),
		incoming: make(map[NodeID][]*Arc),
		arcs:     make(map[ArcID]*Arc),
	}
}

// AddNode registers a junction at the given map position.
func (g *Graph) AddNode(id NodeID, pos geo.MapPoint) {
	g.position[id] = pos
}

// Position returns the map-unit position of a node.
func (g *Graph) Position(id NodeID) (geo.MapPoint, bool) {
	p, ok := g.position[id]
	return p, ok
}

// AddArc adds a directed arc to the graph.
func (g *Graph) AddArc(a *Arc) {
	g.arcs[a.ID] = a
	g.outgoing[a.From] = append(g.outgoing[a.From], a)
	g.incoming[a.To] = append(g.incoming[a.To], a)
}

// Outgoing returns the arcs leaving a node.
func (g *Graph) Outgoing(id NodeID) []*Arc {
	return g.outgoing[id]
}

// Incoming returns the arcs entering a node.
func (g *Graph) Incoming(id NodeID) []*Arc {
	return g.incoming[id]
}

// NearestNode does a linear scan for the node nearest to p; adequate for the
// small in-memory graphs navcore builds or receives in tests, where the real
// spatial index lives in the (out of scope) map database.
func (g *Graph) NearestNode(p geo.MapPoint) (NodeID, bool) {
	best := NodeID(0)
	bestDist := 0.0
	found := false
	for id, pos := range g.position {
		d := geo.PlanarDistance(p, pos)
		if !found || d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// item is one entry of the priority queue, ordered by its f-cost (g + heuristic).
type item struct {
	node   NodeID
	extra  int64 // disambiguates turn-expanded states sharing a node
	gCost  float64
	fCost  float64
	index  int
}

// PriorityQueue is a min-heap of search frontier items, the same
// container/heap shape used throughout the pack's A*/Dijkstra implementations.
type PriorityQueue []*item

func (pq PriorityQueue) Len() int            { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool  { return pq[i].fCost < pq[j].fCost }
func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// NewItem constructs a priority queue entry.
func NewItem(node NodeID, extra int64, gCost, fCost float64) *item {
	return &item{node: node, extra: extra, gCost: gCost, fCost: fCost}
}

// Node returns the item's node.
func (it *item) Node() NodeID { return it.node }

// Extra returns the item's disambiguating key (e.g. incoming arc ID).
func (it *item) Extra() int64 { return it.extra }

// GCost returns the item's accumulated cost.
func (it *item) GCost() float64 { return it.gCost }

var _ = heap.Interface(&PriorityQueue{})
