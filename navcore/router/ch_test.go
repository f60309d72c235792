package router

import (
	"context"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/graph"
	"github.com/bwise1/waze_kibris/navcore/profile"
)

func TestCHIndexBuilt(t *testing.T) {
	var nilIndex *CHIndex
	if nilIndex.Built() {
		t.Error("expected a nil CHIndex to report not built")
	}

	empty := NewCHIndex(nil, nil)
	if empty.Built() {
		t.Error("expected an index with no ranks to report not built")
	}

	populated := NewCHIndex(map[graph.NodeID]int{1: 0, 2: 1}, nil)
	if !populated.Built() {
		t.Error("expected an index with ranks to report built")
	}
}

func TestContractionHierarchyRouterFallsBackWithoutBuiltIndex(t *testing.T) {
	g := buildLinearGraph(t)
	r := &ContractionHierarchyRouter{Graph: g, Index: NewCHIndex(nil, nil)}

	rt, err := r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 200, Y: 0}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.DistanceMeters != 200 {
		t.Errorf("DistanceMeters = %v, want 200", rt.DistanceMeters)
	}
}

func TestSelectRouterDegradesToTurnExpandedWithoutCH(t *testing.T) {
	g := buildLinearGraph(t)

	r := SelectRouter(g, TypeContractionHierarchy, nil)
	if _, ok := r.(*TurnExpandedAStarRouter); !ok {
		t.Errorf("SelectRouter with an unbuilt CH index = %T, want *TurnExpandedAStarRouter", r)
	}

	built := NewCHIndex(map[graph.NodeID]int{1: 0}, nil)
	r2 := SelectRouter(g, TypeContractionHierarchy, built)
	if _, ok := r2.(*ContractionHierarchyRouter); !ok {
		t.Errorf("SelectRouter with a built CH index = %T, want *ContractionHierarchyRouter", r2)
	}

	r3 := SelectRouter(g, TypeStandardAStar, nil)
	if _, ok := r3.(*StandardAStarRouter); !ok {
		t.Errorf("SelectRouter(TypeStandardAStar) = %T, want *StandardAStarRouter", r3)
	}
}
