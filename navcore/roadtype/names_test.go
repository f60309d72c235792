package roadtype

import "testing"

func TestRoadTypeString(t *testing.T) {
	cases := []struct {
		rt   RoadType
		want string
	}{
		{Motorway, "motorway"},
		{Residential, "residential"},
		{Cycleway, "cycleway"},
		{RoadType(200), "unknown_road_type"},
	}
	for _, c := range cases {
		if got := c.rt.String(); got != c.want {
			t.Errorf("RoadType(%d).String() = %q, want %q", c.rt, got, c.want)
		}
	}
}

func TestGradientBinSteepnessAndDescending(t *testing.T) {
	cases := []struct {
		g             GradientBin
		wantSteepness int
		wantDescend   bool
	}{
		{GradientUp0, 0, false},
		{GradientUp3, 3, false},
		{GradientDown0, 0, true},
		{GradientDown3, 3, true},
	}
	for _, c := range cases {
		if got := c.g.Steepness(); got != c.wantSteepness {
			t.Errorf("%v.Steepness() = %d, want %d", c.g, got, c.wantSteepness)
		}
		if got := c.g.IsDescending(); got != c.wantDescend {
			t.Errorf("%v.IsDescending() = %v, want %v", c.g, got, c.wantDescend)
		}
	}
}

func TestGradientBinString(t *testing.T) {
	if got := GradientDown2.String(); got != "down2" {
		t.Errorf("GradientDown2.String() = %q, want down2", got)
	}
	if got := GradientBin(200).String(); got != "unknown_gradient" {
		t.Errorf("out-of-range gradient String() = %q, want unknown_gradient", got)
	}
}
