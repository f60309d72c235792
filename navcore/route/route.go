// Package route holds the assembled output of a route search: the segment
// list, its aggregate distance/time, the concatenated path geometry, and the
// per-segment geometry index used by the navigator to locate a live fix
// against the route.
package route

import (
	"fmt"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// Segment is one arc traversed by a route, annotated with the turn taken to
// leave it and the section index it belongs to (a "section" groups segments
// between user-specified via points, so instructions can say "in section 2").
type Segment struct {
	DistanceMeters float64
	TimeSeconds    float64
	Attr           roadtype.ArcAttributes
	Gradient       roadtype.GradientBin
	Name           string
	Ref            string
	Path           geo.Contour
	Turn           turn.Descriptor
	Section        int
	Signalized     bool

	// TurnTimeSeconds is the junction turn-time of the turn at this
	// segment's far end (the turn recorded in Turn), already folded into
	// TimeSeconds; the junction at a segment's start is not charged to it. Carried separately so a
	// consumer (traffic delay reporting, ETA breakdowns) can back it out
	// without re-deriving it from the turn descriptor.
	TurnTimeSeconds float64

	// Restricted marks a segment the profile could only traverse because it
	// is an endpoint of the route (an otherwise-forbidden access restriction
	// or a zero-effective-speed road type, relaxed per profile.Profile's
	// endpoint rules). It is always false for interior segments.
	Restricted bool
}

// PathToJunction describes the path from the current navigation position to
// the next junction of interest -- the remaining distance/time on the
// current segment plus the turn to be taken there.
type PathToJunction struct {
	DistanceMeters float64
	TimeSeconds    float64
	Turn           turn.Descriptor
}

// Route is an assembled, navigable path: the ordered segment list plus
// cached aggregates. Invariants: DistanceMeters equals the sum of every
// segment's DistanceMeters, TimeSeconds equals the sum of every segment's
// TimeSeconds, and Path equals the head-to-tail concatenation of every
// segment's Path.
type Route struct {
	Segments       []Segment
	DistanceMeters float64
	TimeSeconds    float64
	Path           geo.Contour
	Profile        profile.Profile

	// PointScale converts the map units used by Path into meters. The
	// router's map units are already meters, so this is always 1 today; it
	// is carried on the Route so a future projection with a different unit
	// scale doesn't need a wire-format change.
	PointScale float64

	// PathToJunctionBefore and PathToJunctionAfter describe the approach
	// into the route's first segment and out of its last segment -- the
	// remaining distance/time on that segment and the turn taken at its far
	// end -- for traffic and OpenLR-style location referencing that needs
	// the junction-approach portion of a segment rather than the whole
	// segment. Nil for an empty route.
	PathToJunctionBefore *PathToJunction
	PathToJunctionAfter  *PathToJunction
}

// Builder assembles a Route segment by segment, maintaining the aggregate
// invariants incrementally instead of recomputing them on every read.
type Builder struct {
	segments       []Segment
	distanceMeters float64
	timeSeconds    float64
	path           geo.Contour
	lastSection    int
}

// NewBuilder starts an empty route assembly.
func NewBuilder() *Builder {
	return &Builder{}
}

// AppendSegment adds a segment to the route under construction. Section
// numbers must be non-decreasing across appended segments, reflecting the
// order via points are visited.
func (b *Builder) AppendSegment(s Segment) error {
	if len(b.segments) > 0 && s.Section < b.lastSection {
		return fmt.Errorf("route: section %d appended after section %d", s.Section, b.lastSection)
	}
	b.segments = append(b.segments, s)
	b.distanceMeters += s.DistanceMeters
	b.timeSeconds += s.TimeSeconds
	b.path = b.path.Append(s.Path)
	b.lastSection = s.Section
	return nil
}

// Finish returns the assembled, immutable Route.
func (b *Builder) Finish(p profile.Profile) *Route {
	r := &Route{
		Segments:       b.segments,
		DistanceMeters: b.distanceMeters,
		TimeSeconds:    b.timeSeconds,
		Path:           b.path,
		Profile:        p,
		PointScale:     1.0,
	}
	if len(b.segments) > 0 {
		first := b.segments[0]
		r.PathToJunctionBefore = &PathToJunction{
			DistanceMeters: first.DistanceMeters,
			TimeSeconds:    first.TimeSeconds,
			Turn:           first.Turn,
		}
		last := b.segments[len(b.segments)-1]
		r.PathToJunctionAfter = &PathToJunction{
			DistanceMeters: last.DistanceMeters,
			TimeSeconds:    last.TimeSeconds,
			Turn:           last.Turn,
		}
	}
	return r
}

// MergeAdjacent returns a new Route in which maximal runs of consecutive
// segments sharing the same name, ref and road type, joined by an Ahead,
// continuing turn, are merged into one segment. This collapses the
// arc-per-junction granularity of the search into the coarser segments a
// turn-by-turn instruction list should present.
func (r *Route) MergeAdjacent() *Route {
	if len(r.Segments) == 0 {
		return &Route{Profile: r.Profile, PointScale: r.PointScale}
	}

	out := make([]Segment, 0, len(r.Segments))
	cur := r.Segments[0]
	for _, next := range r.Segments[1:] {
		mergeable := cur.Name == next.Name &&
			cur.Ref == next.Ref &&
			cur.Attr.RoadType() == next.Attr.RoadType() &&
			cur.Section == next.Section &&
			cur.Turn.Type == turn.Ahead &&
			cur.Turn.Continue

		if mergeable {
			cur.DistanceMeters += next.DistanceMeters
			cur.TimeSeconds += next.TimeSeconds
			cur.Path = cur.Path.Append(next.Path)
			cur.Turn = next.Turn
			cur.Signalized = cur.Signalized || next.Signalized
			cur.Restricted = cur.Restricted || next.Restricted
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)

	merged := &Route{Segments: out, Profile: r.Profile, PointScale: r.PointScale}
	for _, s := range out {
		merged.DistanceMeters += s.DistanceMeters
		merged.TimeSeconds += s.TimeSeconds
		merged.Path = merged.Path.Append(s.Path)
	}
	merged.PathToJunctionBefore = r.PathToJunctionBefore
	merged.PathToJunctionAfter = r.PathToJunctionAfter
	return merged
}

// CopyWithoutRestrictedSegments returns a new Route with every segment
// flagged Restricted removed, along with its contribution to the aggregates
// and path. Used to strip the endpoint-only relaxed segments (a private
// driveway at the start or end of the route) out of a route presented for
// display or re-use, without needing to re-derive which segment was relaxed.
func (r *Route) CopyWithoutRestrictedSegments() *Route {
	out := &Route{Profile: r.Profile, PointScale: r.PointScale}
	for _, s := range r.Segments {
		if s.Restricted {
			continue
		}
		out.Segments = append(out.Segments, s)
		out.DistanceMeters += s.DistanceMeters
		out.TimeSeconds += s.TimeSeconds
		out.Path = out.Path.Append(s.Path)
	}
	return out
}

// TollRoadDistance returns the total distance, in meters, of segments
// flagged as toll roads.
func (r *Route) TollRoadDistance() float64 {
	total := 0.0
	for _, s := range r.Segments {
		if s.Attr.IsToll() {
			total += s.DistanceMeters
		}
	}
	return total
}

// Instructions renders one human-readable instruction string per segment,
// in the current (only supported) locale. Locale is accepted for
// forward compatibility with localized instruction sets.
func (r *Route) Instructions(locale string) []string {
	out := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		out = append(out, fmt.Sprintf("%s for %.0fm", s.Turn.String(), s.DistanceMeters))
	}
	return out
}
