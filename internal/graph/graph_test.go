package graph

import (
	"container/heap"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
)

func TestGraphAddNodeAndPosition(t *testing.T) {
	g := New()
	g.AddNode(1, geo.MapPoint{X: 10, Y: 20})

	pos, ok := g.Position(1)
	if !ok {
		t.Fatal("expected node 1 to be found")
	}
	if pos != (geo.MapPoint{X: 10, Y: 20}) {
		t.Errorf("Position(1) = %v, want {10 20}", pos)
	}

	if _, ok := g.Position(2); ok {
		t.Error("expected node 2 to be absent")
	}
}

func TestGraphAddArcOutgoingIncoming(t *testing.T) {
	g := New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})
	arc := &Arc{ID: 1, From: 1, To: 2, Name: "Main St"}
	g.AddArc(arc)

	out := g.Outgoing(1)
	if len(out) != 1 || out[0] != arc {
		t.Errorf("Outgoing(1) = %v, want [%v]", out, arc)
	}
	in := g.Incoming(2)
	if len(in) != 1 || in[0] != arc {
		t.Errorf("Incoming(2) = %v, want [%v]", in, arc)
	}
	if len(g.Outgoing(2)) != 0 {
		t.Error("expected no outgoing arcs from node 2")
	}
}

func TestGraphNearestNode(t *testing.T) {
	g := New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})
	g.AddNode(3, geo.MapPoint{X: 200, Y: 0})

	id, ok := g.NearestNode(geo.MapPoint{X: 95, Y: 1})
	if !ok {
		t.Fatal("expected a nearest node to be found")
	}
	if id != 2 {
		t.Errorf("NearestNode() = %v, want 2", id)
	}

	if _, ok := New().NearestNode(geo.MapPoint{}); ok {
		t.Error("expected NearestNode on an empty graph to report not found")
	}
}

func TestPriorityQueueOrdersByFCost(t *testing.T) {
	pq := &PriorityQueue{}
	heap.Init(pq)

	heap.Push(pq, NewItem(3, 0, 30, 30))
	heap.Push(pq, NewItem(1, 0, 10, 10))
	heap.Push(pq, NewItem(2, 0, 20, 20))

	var order []NodeID
	for pq.Len() > 0 {
		it := heap.Pop(pq).(*item)
		order = append(order, it.Node())
	}

	want := []NodeID{1, 2, 3}
	for i, n := range want {
		if order[i] != n {
			t.Errorf("pop order[%d] = %v, want %v", i, order[i], n)
		}
	}
}
