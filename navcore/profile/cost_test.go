package profile

import (
	"testing"

	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

func TestModelTraverseForbiddenArc(t *testing.T) {
	m := NewModel(NewCarProfile())
	attr, err := roadtype.NewArcAttributes(roadtype.Footway, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 0, roadtype.AccessCar)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	if _, err := m.Traverse(attr, roadtype.GradientUp0, 100, false); err == nil {
		t.Error("expected Traverse to reject a car-forbidden arc")
	}
}

func TestModelTraverseShortestModeIgnoresSpeed(t *testing.T) {
	p := NewCarProfile()
	p.Shortest = true
	m := NewModel(p)
	attr, err := roadtype.NewArcAttributes(roadtype.Motorway, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 120, 0)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	cost, err := m.Traverse(attr, roadtype.GradientUp0, 500, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 500 {
		t.Errorf("shortest-mode cost = %v, want 500", cost)
	}
}

func TestModelTraverseAppliesGradientAndToll(t *testing.T) {
	m := NewModel(NewCarProfile())
	attr, err := roadtype.NewArcAttributes(roadtype.Motorway, roadtype.GradientUp3, roadtype.OneWayForward, false, true, 110, 0)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	flat, err := roadtype.NewArcAttributes(roadtype.Motorway, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 110, 0)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}

	uphillToll, err := m.Traverse(attr, roadtype.GradientUp3, 1000, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flatNoToll, err := m.Traverse(flat, roadtype.GradientUp0, 1000, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uphillToll <= flatNoToll {
		t.Errorf("expected uphill+toll cost (%v) to exceed flat, toll-free cost (%v)", uphillToll, flatNoToll)
	}
}

func TestModelTurnTime(t *testing.T) {
	m := NewModel(NewCarProfile())

	if got := m.TurnTime(179, false, false, false); got != Cost(m.Profile.UTurnTime) {
		t.Errorf("near-180 angle TurnTime = %v, want UTurnTime %v", got, m.Profile.UTurnTime)
	}
	if got := m.TurnTime(5, false, false, true); got != 0 {
		t.Errorf("same-road-ahead TurnTime = %v, want 0", got)
	}
	if got := m.TurnTime(90, true, false, false); got != Cost(2*m.Profile.CrossTrafficTurnTime) {
		t.Errorf("cross-traffic TurnTime = %v, want %v", got, 2*m.Profile.CrossTrafficTurnTime)
	}
	plain := m.TurnTime(90, false, false, false)
	signalized := m.TurnTime(90, false, true, false)
	if signalized != plain+Cost(m.Profile.TrafficLightTime) {
		t.Errorf("signalized TurnTime = %v, want plain(%v) + TrafficLightTime(%v)", signalized, plain, m.Profile.TrafficLightTime)
	}
}
