package router

import (
	"context"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

// buildLinearGraph returns a three-node graph A(0,0) -> B(100,0) -> C(200,0)
// over residential arcs, plus a node D(100,50) only reachable via a footway,
// to exercise profile-based arc rejection.
func buildLinearGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})
	g.AddNode(3, geo.MapPoint{X: 200, Y: 0})

	residential, err := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.AddArc(&graph.Arc{ID: 1, From: 1, To: 2, Attr: residential, Name: "Main St",
		Geometry: geo.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	g.AddArc(&graph.Arc{ID: 2, From: 2, To: 3, Attr: residential, Name: "Main St",
		Geometry: geo.Contour{{X: 100, Y: 0}, {X: 200, Y: 0}}})

	return g
}

func TestStandardAStarRouterPlan(t *testing.T) {
	g := buildLinearGraph(t)
	r := &StandardAStarRouter{Graph: g}

	rt, err := r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 200, Y: 0}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rt.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2", len(rt.Segments))
	}
	if rt.DistanceMeters != 200 {
		t.Errorf("DistanceMeters = %v, want 200", rt.DistanceMeters)
	}
}

func TestStandardAStarRouterNoPath(t *testing.T) {
	g := graph.New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})
	// No arcs at all: no path can connect the two nodes.
	r := &StandardAStarRouter{Graph: g}

	_, err := r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 100, Y: 0}, nil, profile.NewCarProfile())
	if err == nil {
		t.Error("expected an error when no path connects start and end")
	}
}

func TestStandardAStarRouterRejectsForbiddenProfile(t *testing.T) {
	g := graph.New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})

	footway, err := roadtype.NewArcAttributes(roadtype.Footway, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, 0, roadtype.AccessCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.AddArc(&graph.Arc{ID: 1, From: 1, To: 2, Attr: footway, Name: "Path",
		Geometry: geo.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}}})

	r := &StandardAStarRouter{Graph: g}
	_, err = r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 100, Y: 0}, nil, profile.NewCarProfile())
	if err == nil {
		t.Error("expected an error when the only arc forbids the vehicle")
	}
}
