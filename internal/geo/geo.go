// Package geo provides the small planar/geographic primitives navcore needs:
// lat/lon points, projected map-unit points, contours, and the distance,
// heading and interpolation helpers used by the route geometry index and the
// navigator. Coordinate projection itself (LatLon <-> MapXY) is an external
// collaborator, injected as a Projection/InverseProjection function.
package geo

import "math"

// earthRadiusMeters is the mean radius used for haversine distance.
const earthRadiusMeters = 6371000.0

// Point is a geographic position in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// MapPoint is a position in map units: a planar coordinate system in which
// ordinary Euclidean distance and angle math apply directly. A Route's
// PointScale converts map units to meters.
type MapPoint struct {
	X float64
	Y float64
}

// Contour is an ordered sequence of map-unit points describing a path.
type Contour []MapPoint

// Projection converts a geographic point to map units.
type Projection func(Point) MapPoint

// InverseProjection converts a map-unit point back to a geographic point.
type InverseProjection func(MapPoint) Point

// HaversineMeters returns the great-circle distance between two geographic points.
func HaversineMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// PlanarDistance returns the Euclidean distance between two map points.
func PlanarDistance(a, b MapPoint) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PlanarHeading returns the direction from a to b as a map-frame angle in
// degrees, counterclockwise from +x, normalized to [0, 360).
func PlanarHeading(a, b MapPoint) float64 {
	h := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

// NormalizeAngle reduces a degree value to (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	}
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// TurnAngle returns the signed turn angle between an incoming heading and an
// outgoing heading, using the routing convention of spec §3: positive is a
// turn to the right, negative a turn to the left. Headings follow the
// mathematical (counterclockwise-from-+x) convention of PlanarHeading, under
// which a clockwise (rightward) turn is a *negative* change in heading, so the
// sign is inverted here to produce the routing-domain angle.
func TurnAngle(headingIn, headingOut float64) float64 {
	return NormalizeAngle(-(headingOut - headingIn))
}

// Lerp linearly interpolates between two map points.
func Lerp(a, b MapPoint, t float64) MapPoint {
	return MapPoint{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// ProjectToSegment returns the point on segment a-b nearest to p, the
// fractional position t in [0,1] along the segment, and the distance from p
// to the nearest point.
func ProjectToSegment(p, a, b MapPoint) (nearest MapPoint, t float64, distance float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0, PlanarDistance(p, a)
	}
	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	nearest = Lerp(a, b, t)
	return nearest, t, PlanarDistance(p, nearest)
}

// Length returns the total length of the contour in map units.
func (c Contour) Length() float64 {
	total := 0.0
	for i := 1; i < len(c); i++ {
		total += PlanarDistance(c[i-1], c[i])
	}
	return total
}

// Reverse returns a new contour with points in reverse order.
func (c Contour) Reverse() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// Append returns a new contour consisting of c followed by other. If the last
// point of c equals the first point of other, the duplicate join point is
// dropped so that contours concatenate head-to-tail exactly.
func (c Contour) Append(other Contour) Contour {
	if len(c) == 0 {
		out := make(Contour, len(other))
		copy(out, other)
		return out
	}
	if len(other) == 0 {
		out := make(Contour, len(c))
		copy(out, c)
		return out
	}
	out := make(Contour, 0, len(c)+len(other))
	out = append(out, c...)
	if c[len(c)-1] == other[0] {
		out = append(out, other[1:]...)
	} else {
		out = append(out, other...)
	}
	return out
}
