package profile

import (
	"testing"

	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

func TestNewCarProfileSpeeds(t *testing.T) {
	p := NewCarProfile()
	if got := p.SpeedKPH[roadtype.Motorway]; got != 110 {
		t.Errorf("motorway speed = %v, want 110", got)
	}
	if got := p.SpeedKPH[roadtype.Residential]; got != 30 {
		t.Errorf("residential speed = %v, want 30", got)
	}
	if p.TollPenalty <= 0 {
		t.Error("expected car profile to have nonzero toll penalty")
	}
}

func TestNewWalkProfileExcludesMotorway(t *testing.T) {
	p := NewWalkProfile()
	if got := p.SpeedKPH[roadtype.Motorway]; got != 0 {
		t.Errorf("expected zero walk speed on motorway, got %v", got)
	}
	if got := p.SpeedKPH[roadtype.Footway]; got != 5.0 {
		t.Errorf("footway speed = %v, want 5.0", got)
	}
	if got := p.SpeedKPH[roadtype.Steps]; got != 2.0 {
		t.Errorf("steps speed = %v, want 2.0", got)
	}
}

func TestProfileUsableHonorsVehicleAccess(t *testing.T) {
	p := NewCarProfile()
	// A footway-only arc (pedestrian access, no car access) forbids the car.
	attr, err := roadtype.NewArcAttributes(roadtype.Footway, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 0, roadtype.AccessCar)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	if p.Usable(attr) {
		t.Error("expected car to be forbidden on a car-restricted footway")
	}

	clear, err := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	if !p.Usable(clear) {
		t.Error("expected car to be allowed on an unrestricted residential road")
	}
}

func TestProfileUsableAtEndpointRelaxesRestriction(t *testing.T) {
	p := NewCarProfile()
	// Restricts both car and pedestrian access, but not wrong-way: this is
	// the combination UsableAtEndpoint is built to relax.
	attr, err := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 0, roadtype.AccessCar|roadtype.AccessPedestrian)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	if p.Usable(attr) {
		t.Fatal("expected arc to be forbidden under plain Usable, test setup is wrong")
	}
	if !p.UsableAtEndpoint(attr) {
		t.Error("expected UsableAtEndpoint to relax a non-wrong-way restriction paired with a pedestrian-access mismatch")
	}

	wrongWay, err := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp0, roadtype.OneWayForward, false, false, 0, roadtype.AccessCar|roadtype.AccessPedestrian|roadtype.AccessWrongWay)
	if err != nil {
		t.Fatalf("unexpected error building arc: %v", err)
	}
	if p.UsableAtEndpoint(wrongWay) {
		t.Error("expected UsableAtEndpoint to still reject a wrong-way restricted arc")
	}
}
