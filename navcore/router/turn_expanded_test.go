package router

import (
	"context"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
)

func TestTurnExpandedAStarRouterPlan(t *testing.T) {
	g := buildLinearGraph(t)
	r := &TurnExpandedAStarRouter{Graph: g}

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

func TestTurnExpandedAStarRouterNoPath(t *testing.T) {
	g := graph.New()
	g.AddNode(1, geo.MapPoint{X: 0, Y: 0})
	g.AddNode(2, geo.MapPoint{X: 100, Y: 0})
	r := &TurnExpandedAStarRouter{Graph: g}

	_, err := r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 100, Y: 0}, nil, profile.NewCarProfile())
	if err == nil {
		t.Error("expected an error when no arc connects the two nodes")
	}
}
