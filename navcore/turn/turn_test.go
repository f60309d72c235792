package turn

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		angle float64
		want  Type
	}{
		{0, Ahead},
		{10, Ahead},
		{-10, Ahead},
		{20, BearRight},
		{-20, BearLeft},
		{60, Right},
		{-60, Left},
		{150, SharpRight},
		{-150, SharpLeft},
		{179, Around},
		{-179, Around},
		{173, Around},
		{172, SharpRight},
		{-172, SharpLeft},
	}
	for _, c := range cases {
		if got := Classify(c.angle); got != c.want {
			t.Errorf("Classify(%v) = %v, want %v", c.angle, got, c.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := BearRight.String(); got != "bear_right" {
		t.Errorf("BearRight.String() = %q, want bear_right", got)
	}
	if got := Type(200).String(); got != "unknown" {
		t.Errorf("out-of-range Type.String() = %q, want unknown", got)
	}
}

func TestNewDescriptorForkPromotion(t *testing.T) {
	cases := []struct {
		name              string
		angleDeg          float64
		leftAlternatives  int
		rightAlternatives int
		wantType          Type
		wantTurnOff       bool
	}{
		{"no fork stays ahead", 0, 0, 0, Ahead, false},
		{"fork left only promotes bear right", 0, 1, 0, BearRight, true},
		{"fork right only promotes bear left", 0, 0, 1, BearLeft, true},
		{"non-ahead angle unaffected by fork", 30, 1, 0, BearRight, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDescriptor(c.angleDeg, c.leftAlternatives, c.rightAlternatives, false, "Main St", "")
			if d.Type != c.wantType {
				t.Errorf("Type = %v, want %v", d.Type, c.wantType)
			}
			if d.IsTurnOff != c.wantTurnOff {
				t.Errorf("IsTurnOff = %v, want %v", d.IsTurnOff, c.wantTurnOff)
			}
		})
	}
}

func TestDescriptorIsSharp(t *testing.T) {
	for _, typ := range []Type{SharpLeft, SharpRight, Around} {
		d := Descriptor{Type: typ}
		if !d.IsSharp() {
			t.Errorf("%v: expected IsSharp() true", typ)
		}
	}
	for _, typ := range []Type{Ahead, BearLeft, BearRight, Left, Right} {
		d := Descriptor{Type: typ}
		if d.IsSharp() {
			t.Errorf("%v: expected IsSharp() false", typ)
		}
	}
}

func TestDescriptorString(t *testing.T) {
	d := Descriptor{Type: Left, JunctionName: "Main St"}
	if got, want := d.String(), "left onto Main St"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	d = Descriptor{Type: Right, Roundabout: LeaveRoundabout, ExitNumber: 3}
	if got, want := d.String(), "right (exit 3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
