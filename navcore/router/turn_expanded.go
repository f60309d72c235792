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

// TurnExpandedAStarRouter searches over (node, incoming arc) states, so a
// junction that can legally be entered from two different arcs with two
// different turn-time costs is modeled exactly, at the cost of a larger
// search space than StandardAStarRouter.
type TurnExpandedAStarRouter struct {
	Graph *graph.Graph
}

// state identifies one turn-expanded search state: the node reached plus the
// arc used to reach it (0 for the start node, which has no incoming arc).
type teState struct {
	node graph.NodeID
	arc  graph.ArcID
}

func (r *TurnExpandedAStarRouter) Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error) {
	model := profile.NewModel(p)
	return planVia(ctx, start, end, via, p, func(ctx context.Context, from, to geo.MapPoint, section int, p profile.Profile) ([]route.Segment, error) {
		return r.planLeg(ctx, from, to, section, model)
	})
}

func (r *TurnExpandedAStarRouter) heuristic(from, goal geo.MapPoint) profile.Cost {
	meters := geo.PlanarDistance(from, goal)
	return profile.Cost((meters / 1000) / assumedTopSpeedKPH * 3600)
}

type teCameFrom struct {
	arc  *graph.Arc
	prev teState
}

func (r *TurnExpandedAStarRouter) planLeg(ctx context.Context, from, to geo.MapPoint, section int, model profile.Model) ([]route.Segment, error) {
	startNode, ok := r.Graph.NearestNode(from)
	if !ok {
		return nil, errNoPath{}
	}
	goalNode, ok := r.Graph.NearestNode(to)
	if !ok {
		return nil, errNoPath{}
	}
	goalPos, _ := r.Graph.Position(goalNode)

	startState := teState{node: startNode}
	gScore := map[teState]profile.Cost{startState: 0}
	cameFrom := make(map[teState]teCameFrom)
	closed := make(map[teState]bool)
	arcsByID := make(map[graph.ArcID]*graph.Arc)

	pq := &graph.PriorityQueue{}
	heap.Init(pq)
	startPos, _ := r.Graph.Position(startNode)
	heap.Push(pq, graph.NewItem(startNode, 0, 0, float64(r.heuristic(startPos, goalPos))))

	stateByKey := map[int64]teState{0: startState}

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := heap.Pop(pq).(interface {
			Node() graph.NodeID
			Extra() int64
		})
		st, ok := stateByKey[cur.Extra()]
		if !ok {
			continue
		}
		if closed[st] {
			continue
		}
		closed[st] = true

		if st.node == goalNode {
			return r.reconstruct(cameFrom, arcsByID, st, section, model)
		}

		var incomingArc *graph.Arc
		if st.arc != 0 {
			incomingArc = arcsByID[st.arc]
		}
		curPos, _ := r.Graph.Position(st.node)

		for _, arc := range r.Graph.Outgoing(st.node) {
			arcsByID[arc.ID] = arc
			next := teState{node: arc.To, arc: arc.ID}
			if closed[next] {
				continue
			}

			endpoint := st.node == startNode || arc.To == goalNode
			cost, err := model.Traverse(arc.Attr, arc.Gradient, arc.Geometry.Length(), endpoint)
			if err != nil {
				continue
			}
			if incomingArc != nil {
				angle := legAngle(incomingArc, arc, curPos)
				sameRoad := incomingArc.Name != "" && incomingArc.Name == arc.Name
				cost += model.TurnTime(angle, false, arc.Signalized, sameRoad)
			}

			tentative := gScore[st] + cost
			if existing, ok := gScore[next]; !ok || tentative < existing {
				gScore[next] = tentative
				cameFrom[next] = teCameFrom{arc: arc, prev: st}
				key := int64(arc.ID)
				stateByKey[key] = next
				toPos, _ := r.Graph.Position(arc.To)
				f := float64(tentative) + float64(r.heuristic(toPos, goalPos))
				heap.Push(pq, graph.NewItem(arc.To, key, float64(tentative), f))
			}
		}
	}

	return nil, errNoPath{}
}

func (r *TurnExpandedAStarRouter) reconstruct(cameFrom map[teState]teCameFrom, arcsByID map[graph.ArcID]*graph.Arc, goal teState, section int, model profile.Model) ([]route.Segment, error) {
	var arcs []*graph.Arc
	st := goal
	for {
		entry, ok := cameFrom[st]
		if !ok {
			break
		}
		arcs = append([]*graph.Arc{entry.arc}, arcs...)
		st = entry.prev
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
