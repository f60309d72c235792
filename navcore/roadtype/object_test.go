package roadtype

import "testing"

func TestObjectTypeMajorClass(t *testing.T) {
	cases := []struct {
		name string
		o    ObjectType
		want RoadObjectClass
	}{
		{"motorway", ObjectType(ObjMotorway), ObjMotorway},
		{"motorway link", ObjectType(ObjMotorwayLink), ObjMotorwayLink},
		{"tertiary link", ObjectType(ObjTertiaryLink), ObjTertiaryLink},
		{"residential", ObjectType(ObjResidential), ObjResidential},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.o.MajorClass(); got != c.want {
				t.Errorf("MajorClass() = %#x, want %#x", got, c.want)
			}
		})
	}
}

func TestObjectTypeIsOneWay(t *testing.T) {
	cases := []struct {
		dir  ObjectType
		want bool
	}{
		{ObjDriveOnRight, false},
		{ObjDriveOnLeft, false},
		{ObjOneWayForward, true},
		{ObjOneWayBackward, true},
	}
	for _, c := range cases {
		if got := c.dir.IsOneWay(); got != c.want {
			t.Errorf("direction %#x: IsOneWay() = %v, want %v", c.dir, got, c.want)
		}
	}
}

func TestObjectTypeFlagsAndLevel(t *testing.T) {
	o := ObjectType(ObjMotorway) | 1<<2 | 1<<3 | 1<<7
	if !o.IsTunnel() {
		t.Error("expected IsTunnel() true")
	}
	if !o.IsBridge() {
		t.Error("expected IsBridge() true")
	}
	if !o.IsRoundabout() {
		t.Error("expected IsRoundabout() true")
	}
	if o.IsLink() {
		t.Error("expected IsLink() false")
	}

	// Level is a signed nibble: values above 7 represent negative levels.
	below := ObjectType(9 << objLevelShift)
	if got := below.Level(); got != -7 {
		t.Errorf("Level() = %d, want -7", got)
	}
	above := ObjectType(2 << objLevelShift)
	if got := above.Level(); got != 2 {
		t.Errorf("Level() = %d, want 2", got)
	}
}

func TestObjectTypeToArc(t *testing.T) {
	cases := []struct {
		name string
		obj  RoadObjectClass
		want RoadType
	}{
		{"motorway", ObjMotorway, Motorway},
		{"motorway link", ObjMotorwayLink, MotorwayLink},
		{"tertiary", ObjTertiary, Tertiary},
		// TertiaryLink has no distinct arc-level type and collapses onto
		// Tertiary -- the one lossy direction of the conversion.
		{"tertiary link collapses", ObjTertiaryLink, Tertiary},
		{"residential", ObjResidential, Residential},
		{"footpath", ObjFootPath, Footway},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ObjectTypeToArc(ObjectType(c.obj), GradientUp0)
			if err != nil {
				t.Fatalf("ObjectTypeToArc returned error: %v", err)
			}
			if got := a.RoadType(); got != c.want {
				t.Errorf("RoadType() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestObjectTypeToArcPropagatesAccessAndFlags(t *testing.T) {
	o := ObjectType(ObjResidential) | ObjAccessCar | ObjAccessBicycle | objTollFlag
	a, err := ObjectTypeToArc(o, GradientDown1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsToll() {
		t.Error("expected toll flag to propagate")
	}
	if a.AccessRestrictions()&AccessCar == 0 {
		t.Error("expected AccessCar to propagate")
	}
	if a.AccessRestrictions()&AccessBicycle == 0 {
		t.Error("expected AccessBicycle to propagate")
	}
	if got := a.Gradient(); got != GradientDown1 {
		t.Errorf("Gradient() = %v, want %v", got, GradientDown1)
	}
}
