package roadtype

import "testing"

func TestNewArcAttributesRoundTrip(t *testing.T) {
	cases := []struct {
		name          string
		rt            RoadType
		gradient      GradientBin
		direction     uint8
		roundabout    bool
		toll          bool
		speedLimitKPH int
		access        ArcAttributes
	}{
		{"motorway one-way toll", Motorway, GradientUp2, OneWayForward, false, true, 120, AccessCar},
		{"residential two-way", Residential, GradientDown1, DriveOnRightTwoWay, false, false, 30, AccessCar | AccessBicycle},
		{"roundabout", Primary, GradientUp0, OneWayForward, true, false, 50, AccessCar},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := NewArcAttributes(c.rt, c.gradient, c.direction, c.roundabout, c.toll, c.speedLimitKPH, c.access)
			if err != nil {
				t.Fatalf("NewArcAttributes returned error: %v", err)
			}
			if got := a.RoadType(); got != c.rt {
				t.Errorf("RoadType() = %v, want %v", got, c.rt)
			}
			if got := a.Gradient(); got != c.gradient {
				t.Errorf("Gradient() = %v, want %v", got, c.gradient)
			}
			if got := a.Direction(); got != c.direction {
				t.Errorf("Direction() = %v, want %v", got, c.direction)
			}
			if got := a.IsRoundabout(); got != c.roundabout {
				t.Errorf("IsRoundabout() = %v, want %v", got, c.roundabout)
			}
			if got := a.IsToll(); got != c.toll {
				t.Errorf("IsToll() = %v, want %v", got, c.toll)
			}
			if got := a.SpeedLimitKPH(); got != c.speedLimitKPH {
				t.Errorf("SpeedLimitKPH() = %d, want %d", got, c.speedLimitKPH)
			}
			if got := a.AccessRestrictions(); got != c.access&AccessMask {
				t.Errorf("AccessRestrictions() = %v, want %v", got, c.access&AccessMask)
			}
		})
	}
}

func TestNewArcAttributesRejectsInvalidInput(t *testing.T) {
	if _, err := NewArcAttributes(Motorway, GradientUp0, 0x3, true, false, 10, 0); err == nil {
		t.Error("expected error for roundabout arc with two-way direction")
	}
	if _, err := NewArcAttributes(Motorway, GradientUp0, 7, false, false, 10, 0); err == nil {
		t.Error("expected error for invalid direction code")
	}
	if _, err := NewArcAttributes(Motorway, GradientUp0, OneWayForward, false, false, 999, 0); err == nil {
		t.Error("expected error for out-of-range speed limit")
	}
}

func TestArcAttributesIsOneWay(t *testing.T) {
	cases := []struct {
		direction uint8
		want      bool
	}{
		{DriveOnRightTwoWay, false},
		{DriveOnLeftTwoWay, false},
		{OneWayForward, true},
		{OneWayBackward, true},
	}
	for _, c := range cases {
		a, err := NewArcAttributes(Motorway, GradientUp0, c.direction, false, false, 50, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := a.IsOneWay(); got != c.want {
			t.Errorf("direction %d: IsOneWay() = %v, want %v", c.direction, got, c.want)
		}
	}
}

func TestArcAttributesForbidden(t *testing.T) {
	// Arc restricts bicycle access only; the access bits set on an
	// ArcAttributes word are the classes denied travel on that arc.
	a, err := NewArcAttributes(Residential, GradientUp0, DriveOnRightTwoWay, false, false, 30, AccessBicycle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Forbidden(AccessBicycle, 0) {
		t.Error("expected bicycle access to be forbidden on a bicycle-restricted arc")
	}
	// With the restriction overridden by the profile, access is allowed.
	if a.Forbidden(AccessBicycle, AccessBicycle) {
		t.Error("expected bicycle access to be allowed once the restriction is overridden")
	}
	// A car is unaffected by a bicycle-only restriction.
	if a.Forbidden(AccessCar, 0) {
		t.Error("expected car access to be unaffected by a bicycle-only restriction")
	}
}
