// Package traffic defines the data types used to describe a traffic
// condition attached to a location on the road network. Ingesting live
// traffic feeds is out of scope; this package supplies the types and an XML
// writer for them, for a caller that already has the data.
package traffic

// SideOfRoad describes which side of a (possibly divided) road a location
// reference applies to.
type SideOfRoad uint8

const (
	SideEither SideOfRoad = iota
	SideLeft
	SideRight
	SideBoth
)

// RoadOrientation describes a location reference's direction of travel
// relative to the road's digitized direction.
type RoadOrientation uint8

const (
	OrientationBothDirections RoadOrientation = iota
	OrientationForward
	OrientationBackward
)

// LocationRefType distinguishes how a location is anchored to the network.
type LocationRefType uint8

const (
	LocationRefPoint LocationRefType = iota
	LocationRefArc
	LocationRefRoute
)

// LocationRef anchors a traffic condition to a point or stretch of road.
type LocationRef struct {
	Type        LocationRefType
	Lat, Lon    float64
	EndLat      float64
	EndLon      float64
	Side        SideOfRoad
	Orientation RoadOrientation
}

// Severity buckets how much a traffic condition slows travel.
type Severity uint8

const (
	SeverityLight Severity = iota
	SeverityModerate
	SeverityHeavy
	SeverityStationary
)

// Info describes one traffic condition: where it is, how severe, and the
// delay it is expected to add in seconds.
type Info struct {
	ID          string
	Location    LocationRef
	Severity    Severity
	DelaySeconds float64
	Description string
}
