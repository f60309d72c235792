package route

import (
	"math"

	"github.com/bwise1/waze_kibris/internal/geo"
)

// NearestSegmentInfo describes the projection of a point onto one route
// segment.
type NearestSegmentInfo struct {
	SegmentIndex   int
	DistanceMeters float64 // perpendicular distance from the query point
	AlongMeters    float64 // distance along the segment to the projected point
	Point          geo.MapPoint
}

// NearestRoadInfo describes the projection of a point onto the route as a
// whole: the nearest segment plus the cumulative distance along the entire
// route to the projected point, used to detect off-route drift.
type NearestRoadInfo struct {
	NearestSegmentInfo
	DistanceAlongRouteMeters float64
}

// Index supports efficient nearest-point and distance/time-offset queries
// against a Route's geometry, the operations the navigator needs on every
// incoming fix.
type Index struct {
	route          *Route
	cumDistance    []float64 // cumulative distance at the start of each segment
	cumTime        []float64 // cumulative time at the start of each segment
}

// NewIndex builds an Index over a route's segments.
func NewIndex(r *Route) *Index {
	idx := &Index{
		route:       r,
		cumDistance: make([]float64, len(r.Segments)+1),
		cumTime:     make([]float64, len(r.Segments)+1),
	}
	for i, s := range r.Segments {
		idx.cumDistance[i+1] = idx.cumDistance[i] + s.DistanceMeters
		idx.cumTime[i+1] = idx.cumTime[i] + s.TimeSeconds
	}
	return idx
}

// NearestSegment finds the route segment nearest to p. If section >= 0, the
// search is restricted to segments in that section (used once a fix has been
// matched to a section, to avoid snapping across a route that crosses
// itself). prevDistanceHint, when non-negative, limits the search to
// segments within searchWindowMeters of that cumulative distance along the
// route, since a navigating fix moves forward a small amount between
// updates -- this keeps each lookup near-constant time on long routes
// instead of rescanning the whole path.
func (idx *Index) NearestSegment(p geo.MapPoint, section int, prevDistanceHint float64) (NearestRoadInfo, bool) {
	const searchWindowMeters = 2000.0

	best := NearestRoadInfo{}
	found := false

	for i, s := range idx.route.Segments {
		if section >= 0 && s.Section != section {
			continue
		}
		if prevDistanceHint >= 0 {
			segStart := idx.cumDistance[i]
			if segStart < prevDistanceHint-searchWindowMeters || segStart > prevDistanceHint+searchWindowMeters {
				continue
			}
		}

		for j := 1; j < len(s.Path); j++ {
			nearest, t, dist := geo.ProjectToSegment(p, s.Path[j-1], s.Path[j])
			if !found || dist < best.DistanceMeters {
				along := t * geo.PlanarDistance(s.Path[j-1], s.Path[j])
				prefixInSegment := 0.0
				for k := 1; k < j; k++ {
					prefixInSegment += geo.PlanarDistance(s.Path[k-1], s.Path[k])
				}
				best = NearestRoadInfo{
					NearestSegmentInfo: NearestSegmentInfo{
						SegmentIndex:   i,
						DistanceMeters: dist,
						AlongMeters:    prefixInSegment + along,
						Point:          nearest,
					},
					DistanceAlongRouteMeters: idx.cumDistance[i] + prefixInSegment + along,
				}
				found = true
			}
		}
	}

	return best, found
}

// PointAtDistance returns the map point at the given cumulative distance
// along the route, clamped to [0, total distance].
func (idx *Index) PointAtDistance(distanceMeters float64) geo.MapPoint {
	if len(idx.route.Segments) == 0 {
		return geo.MapPoint{}
	}
	if distanceMeters <= 0 {
		return idx.route.Segments[0].Path[0]
	}
	total := idx.cumDistance[len(idx.cumDistance)-1]
	if distanceMeters >= total {
		last := idx.route.Segments[len(idx.route.Segments)-1].Path
		return last[len(last)-1]
	}

	segIdx := idx.segmentAtDistance(distanceMeters)
	s := idx.route.Segments[segIdx]
	within := distanceMeters - idx.cumDistance[segIdx]
	return pointAlongContour(s.Path, within)
}

// PointAtTime returns the map point at the given cumulative travel time
// along the route. Interpolation is piecewise-linear in distance within each
// segment's own time budget: this introduces a small discontinuity in
// implied speed at junction boundaries, which is acceptable since the result
// is used only for ETA-driven display (e.g. "your position in 2 minutes"),
// not navigation-grade positioning.
func (idx *Index) PointAtTime(timeSeconds float64) geo.MapPoint {
	if len(idx.route.Segments) == 0 {
		return geo.MapPoint{}
	}
	total := idx.cumTime[len(idx.cumTime)-1]
	if timeSeconds <= 0 {
		return idx.route.Segments[0].Path[0]
	}
	if timeSeconds >= total {
		last := idx.route.Segments[len(idx.route.Segments)-1].Path
		return last[len(last)-1]
	}

	segIdx := 0
	for i := 0; i < len(idx.route.Segments); i++ {
		if idx.cumTime[i+1] > timeSeconds {
			segIdx = i
			break
		}
	}
	s := idx.route.Segments[segIdx]
	elapsedInSeg := timeSeconds - idx.cumTime[segIdx]
	frac := 0.0
	if s.TimeSeconds > 0 {
		frac = elapsedInSeg / s.TimeSeconds
	}
	return pointAlongContour(s.Path, frac*s.DistanceMeters)
}

func (idx *Index) segmentAtDistance(distanceMeters float64) int {
	for i := 0; i < len(idx.route.Segments); i++ {
		if idx.cumDistance[i+1] > distanceMeters || i == len(idx.route.Segments)-1 {
			return i
		}
	}
	return 0
}

// pointAlongContour walks a contour and returns the point at the given
// distance from its start, interpolating within the enclosing sub-segment.
func pointAlongContour(c geo.Contour, distanceMeters float64) geo.MapPoint {
	if len(c) == 0 {
		return geo.MapPoint{}
	}
	if distanceMeters <= 0 {
		return c[0]
	}
	remaining := distanceMeters
	for i := 1; i < len(c); i++ {
		segLen := geo.PlanarDistance(c[i-1], c[i])
		if segLen >= remaining || math.Abs(segLen) < 1e-9 {
			if segLen == 0 {
				return c[i-1]
			}
			return geo.Lerp(c[i-1], c[i], remaining/segLen)
		}
		remaining -= segLen
	}
	return c[len(c)-1]
}
