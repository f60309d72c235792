package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestHaversineMeters(t *testing.T) {
	// One degree of longitude at the equator is about 111.32 km.
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 1}
	got := HaversineMeters(a, b)
	if !almostEqual(got, 111195, 500) {
		t.Errorf("HaversineMeters(equator, 1 deg lon) = %v, want ~111195", got)
	}

	same := HaversineMeters(a, a)
	if same != 0 {
		t.Errorf("HaversineMeters(a, a) = %v, want 0", same)
	}
}

func TestPlanarDistanceAndHeading(t *testing.T) {
	a := MapPoint{X: 0, Y: 0}
	b := MapPoint{X: 3, Y: 4}
	if got := PlanarDistance(a, b); got != 5 {
		t.Errorf("PlanarDistance() = %v, want 5", got)
	}

	cases := []struct {
		name string
		b    MapPoint
		want float64
	}{
		{"east", MapPoint{X: 1, Y: 0}, 0},
		{"north", MapPoint{X: 0, Y: 1}, 90},
		{"west", MapPoint{X: -1, Y: 0}, 180},
		{"south", MapPoint{X: 0, Y: -1}, 270},
	}
	for _, c := range cases {
		if got := PlanarHeading(a, c.b); !almostEqual(got, c.want, 1e-9) {
			t.Errorf("%s: PlanarHeading() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{-181, 179},
		{360, 0},
		{540, 180},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); !almostEqual(got, c.want, 1e-9) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTurnAngle(t *testing.T) {
	cases := []struct {
		name               string
		headingIn, headingOut, want float64
	}{
		{"straight ahead", 0, 0, 0},
		{"right turn", 0, 270, 90},
		{"left turn", 0, 90, -90},
		{"u-turn", 0, 180, 180},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TurnAngle(c.headingIn, c.headingOut); !almostEqual(got, c.want, 1e-9) {
				t.Errorf("TurnAngle(%v, %v) = %v, want %v", c.headingIn, c.headingOut, got, c.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	a := MapPoint{X: 0, Y: 0}
	b := MapPoint{X: 10, Y: 20}
	mid := Lerp(a, b, 0.5)
	if mid != (MapPoint{X: 5, Y: 10}) {
		t.Errorf("Lerp(0.5) = %v, want {5 10}", mid)
	}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestProjectToSegment(t *testing.T) {
	a := MapPoint{X: 0, Y: 0}
	b := MapPoint{X: 10, Y: 0}

	nearest, tt, dist := ProjectToSegment(MapPoint{X: 5, Y: 3}, a, b)
	if nearest != (MapPoint{X: 5, Y: 0}) {
		t.Errorf("nearest = %v, want {5 0}", nearest)
	}
	if !almostEqual(tt, 0.5, 1e-9) {
		t.Errorf("t = %v, want 0.5", tt)
	}
	if !almostEqual(dist, 3, 1e-9) {
		t.Errorf("distance = %v, want 3", dist)
	}

	// Beyond segment end clamps t to 1.
	_, tClamped, _ := ProjectToSegment(MapPoint{X: 20, Y: 0}, a, b)
	if tClamped != 1 {
		t.Errorf("t beyond endpoint = %v, want 1", tClamped)
	}

	// Degenerate (zero-length) segment returns the single point.
	nearestZero, tZero, distZero := ProjectToSegment(MapPoint{X: 3, Y: 4}, a, a)
	if nearestZero != a || tZero != 0 || distZero != 5 {
		t.Errorf("degenerate segment: nearest=%v t=%v dist=%v, want a, 0, 5", nearestZero, tZero, distZero)
	}
}

func TestContourLengthReverseAppend(t *testing.T) {
	c := Contour{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	if got := c.Length(); got != 7 {
		t.Errorf("Length() = %v, want 7", got)
	}

	rev := c.Reverse()
	want := Contour{{X: 3, Y: 4}, {X: 3, Y: 0}, {X: 0, Y: 0}}
	for i := range want {
		if rev[i] != want[i] {
			t.Errorf("Reverse()[%d] = %v, want %v", i, rev[i], want[i])
		}
	}

	other := Contour{{X: 3, Y: 4}, {X: 5, Y: 4}}
	joined := c.Append(other)
	if len(joined) != 4 {
		t.Fatalf("Append() length = %d, want 4 (shared join point dropped)", len(joined))
	}
	if joined[len(joined)-1] != (MapPoint{X: 5, Y: 4}) {
		t.Errorf("Append() last point = %v, want {5 4}", joined[len(joined)-1])
	}

	disjoint := Contour{{X: 0, Y: 0}}.Append(Contour{{X: 100, Y: 100}})
	if len(disjoint) != 2 {
		t.Errorf("Append() of disjoint contours length = %d, want 2", len(disjoint))
	}
}
