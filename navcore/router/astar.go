package router

import (
	"container/heap"
	"context"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// assumedTopSpeedKPH bounds the A* heuristic: straight-line distance divided
// by the fastest speed any profile preset allows, so the heuristic never
// overestimates the true remaining cost.
const assumedTopSpeedKPH = 130.0

// StandardAStarRouter plans over graph.Graph with A*, charging turn time at
// expansion time but without a turn-expanded state space: each node is
// visited once per search, keyed by NodeID alone, in the same priority-queue
// shape as the pack's turn-penalty search example.
type StandardAStarRouter struct {
	Graph *graph.Graph
}

// Plan implements Router.
func (r *StandardAStarRouter) Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error) {
	model := profile.NewModel(p)
	return planVia(ctx, start, end, via, p, func(ctx context.Context, from, to geo.MapPoint, section int, p profile.Profile) ([]route.Segment, error) {
		return r.planLeg(ctx, from, to, section, model)
	})
}

func (r *StandardAStarRouter) heuristic(from, goal geo.MapPoint) profile.Cost {
	meters := geo.PlanarDistance(from, goal)
	return profile.Cost((meters / 1000) / assumedTopSpeedKPH * 3600)
}

// cameFromEntry records how a node was first reached during an A* search:
// the arc taken and the predecessor node, for backtracking once the goal
// is popped.
type cameFromEntry struct {
	arc  *graph.Arc
	node graph.NodeID
}

func (r *StandardAStarRouter) planLeg(ctx context.Context, from, to geo.MapPoint, section int, model profile.Model) ([]route.Segment, error) {
	startNode, ok := r.Graph.NearestNode(from)
	if !ok {
		return nil, errNoPath{}
	}
	goalNode, ok := r.Graph.NearestNode(to)
	if !ok {
		return nil, errNoPath{}
	}

	goalPos, _ := r.Graph.Position(goalNode)

	cameFrom := make(map[graph.NodeID]cameFromEntry)
	gScore := map[graph.NodeID]profile.Cost{startNode: 0}
	closed := make(map[graph.NodeID]bool)

	pq := &graph.PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, graph.NewItem(startNode, 0, 0, float64(r.heuristic(from, goalPos))))

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := heap.Pop(pq).(interface {
			Node() graph.NodeID
			GCost() float64
		})
		node := cur.Node()
		if closed[node] {
			continue
		}
		closed[node] = true

		if node == goalNode {
			return r.reconstruct(cameFrom, node, section, model)
		}

		curPos, _ := r.Graph.Position(node)
		incomingArc := cameFrom[node].arc

		for _, arc := range r.Graph.Outgoing(node) {
			if closed[arc.To] {
				continue
			}
			endpoint := arc.From == startNode || arc.To == goalNode
			cost, err := model.Traverse(arc.Attr, arc.Gradient, arc.Geometry.Length(), endpoint)
			if err != nil {
				continue
			}

			if incomingArc != nil {
				angle := legAngle(incomingArc, arc, curPos)
				cost += model.TurnTime(angle, false, arc.Signalized, incomingArc.Name != "" && incomingArc.Name == arc.Name)
			}

			tentative := gScore[node] + cost
			if existing, ok := gScore[arc.To]; !ok || tentative < existing {
				gScore[arc.To] = tentative
				cameFrom[arc.To] = cameFromEntry{arc: arc, node: node}
				toPos, _ := r.Graph.Position(arc.To)
				f := float64(tentative) + float64(r.heuristic(toPos, goalPos))
				heap.Push(pq, graph.NewItem(arc.To, 0, float64(tentative), f))
			}
		}
	}

	return nil, errNoPath{}
}

// legAngle computes the turn angle between the incoming and outgoing arcs at
// a junction from their geometry headings either side of the junction point.
func legAngle(incoming, outgoing *graph.Arc, junction geo.MapPoint) float64 {
	var headingIn float64
	if len(incoming.Geometry) >= 2 {
		headingIn = geo.PlanarHeading(incoming.Geometry[len(incoming.Geometry)-2], incoming.Geometry[len(incoming.Geometry)-1])
	}
	var headingOut float64
	if len(outgoing.Geometry) >= 2 {
		headingOut = geo.PlanarHeading(outgoing.Geometry[0], outgoing.Geometry[1])
	}
	return geo.TurnAngle(headingIn, headingOut)
}

// reconstruct walks cameFrom backwards from goal to build the ordered
// segment list, then assigns turn descriptors forwards.
func (r *StandardAStarRouter) reconstruct(cameFrom map[graph.NodeID]cameFromEntry, goal graph.NodeID, section int, model profile.Model) ([]route.Segment, error) {
	var arcs []*graph.Arc
	node := goal
	for {
		entry, ok := cameFrom[node]
		if !ok {
			break
		}
		arcs = append([]*graph.Arc{entry.arc}, arcs...)
		node = entry.node
	}

	segs := make([]route.Segment, 0, len(arcs))
	roundaboutExit := 0
	for i, arc := range arcs {
		length := arc.Geometry.Length()
		endpoint := i == 0 || i == len(arcs)-1
		cost, err := model.Traverse(arc.Attr, arc.Gradient, length, endpoint)
		if err != nil {
			return nil, err
		}
		restricted := endpoint && !model.Profile.Usable(arc.Attr)

		var next *graph.Arc
		if i+1 < len(arcs) {
			next = arcs[i+1]
		}
		rbState, exitNumber := roundaboutState(arc, next, &roundaboutExit)

		var desc turn.Descriptor
		var turnTime float64
		if next != nil {
			angle := legAngle(arc, next, geo.MapPoint{})
			sameRoad := arc.Name != "" && arc.Name == next.Name
			left, right := countAlternatives(r.Graph, arc, next)
			desc = turn.NewDescriptor(angle, left, right, sameRoad, next.JunctionName, next.JunctionRef)
			turnTime = float64(model.TurnTime(angle, false, next.Signalized, sameRoad))
		} else {
			desc = turn.Descriptor{Type: turn.Ahead}
		}
		desc.Roundabout = rbState
		desc.ExitNumber = exitNumber

		segs = append(segs, route.Segment{
			DistanceMeters:  length,
			TimeSeconds:     float64(cost) + turnTime,
			Attr:            arc.Attr,
			Gradient:        arc.Gradient,
			Name:            arc.Name,
			Ref:             arc.Ref,
			Path:            arc.Geometry,
			Turn:            desc,
			Section:         section,
			Signalized:      arc.Signalized,
			Restricted:      restricted,
			TurnTimeSeconds: turnTime,
		})
	}
	return segs, nil
}
