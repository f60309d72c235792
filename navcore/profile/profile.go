// Package profile implements the route cost model: given a vehicle's
// capabilities and preferences (speed per road type, gradient sensitivity,
// toll aversion, turn timing), it scores how expensive it is to traverse an
// arc or make a turn, for the router package to minimize.
package profile

import "github.com/bwise1/waze_kibris/navcore/roadtype"

// Default turn-time constants, in seconds, matching the original navigation
// profile's defaults.
const (
	DefaultTurnTime             = 4.0
	DefaultUTurnTime            = 300.0
	DefaultCrossTrafficTurnTime = 8.0
	DefaultTrafficLightTime     = 10.0
)

// uTurnToleranceDeg is the half-width of the "approximately 180 degrees"
// window that the cost model treats as a U-turn for timing purposes.
const uTurnToleranceDeg = 11.75

// Profile holds every tunable of the cost model for one vehicle/preference
// combination. Speed and bonus are indexed by roadtype.RoadType; gradient
// speed/bonus are indexed by roadtype.GradientBin.
type Profile struct {
	Vehicle roadtype.VehicleType

	// Shortest, when true, makes Cost equal to pure distance: every speed and
	// bonus entry is ignored.
	Shortest bool

	SpeedKPH [32]float64
	Bonus    [32]float64

	// RestrictionOverride, indexed by RoadType, is ANDed out of an arc's
	// access restrictions before legality is tested -- it lets a profile
	// declare "I don't care that this road type is normally restricted for my
	// vehicle class".
	RestrictionOverride [32]roadtype.ArcAttributes

	GradientSpeedFactor [8]float64
	GradientBonus       [8]float64

	// GradientApplicability is the set of RoadTypes for which gradient
	// affects speed at all; by default it excludes steps and both ferry
	// types, where "uphill" is meaningless to a router.
	GradientApplicability [32]bool

	TurnTime             float64
	UTurnTime            float64
	CrossTrafficTurnTime float64
	TrafficLightTime     float64

	// TollPenalty is a value in [0, 1) converted to a cost multiplier of
	// 1 + TollPenalty/(1-TollPenalty) applied to toll arcs.
	TollPenalty float64
}

// defaultGradientApplicability returns the applicability table with every
// road type enabled except Steps, VehicularFerry and PassengerFerry.
func defaultGradientApplicability() [32]bool {
	var a [32]bool
	for i := range a {
		a[i] = true
	}
	a[roadtype.Steps] = false
	a[roadtype.VehicularFerry] = false
	a[roadtype.PassengerFerry] = false
	return a
}

// newBaseProfile returns a Profile with the shared defaults (turn timing,
// gradient applicability, a flat gradient factor of 1) before the per-mode
// presets fill in speeds.
func newBaseProfile(vehicle roadtype.VehicleType) Profile {
	p := Profile{
		Vehicle:               vehicle,
		GradientApplicability: defaultGradientApplicability(),
		TurnTime:              DefaultTurnTime,
		UTurnTime:             DefaultUTurnTime,
		CrossTrafficTurnTime:  DefaultCrossTrafficTurnTime,
		TrafficLightTime:      DefaultTrafficLightTime,
	}
	for i := range p.GradientSpeedFactor {
		p.GradientSpeedFactor[i] = 1.0
	}
	return p
}

// NewCarProfile returns the stock driving profile: free-flow speeds per road
// type, a modest uphill penalty, and a toll-averse-but-not-toll-avoiding
// default.
func NewCarProfile() Profile {
	p := newBaseProfile(roadtype.NewCarVehicle())
	p.SpeedKPH = [32]float64{
		roadtype.Motorway: 110, roadtype.MotorwayLink: 60,
		roadtype.Trunk: 95, roadtype.TrunkLink: 50,
		roadtype.Primary: 80, roadtype.PrimaryLink: 45,
		roadtype.Secondary: 65, roadtype.SecondaryLink: 40,
		roadtype.Tertiary: 50, roadtype.Unclassified: 40,
		roadtype.Residential: 30, roadtype.Service: 20,
		roadtype.Track: 15, roadtype.LivingStreet: 15,
		roadtype.Unsurfaced: 20, roadtype.VehicularFerry: 25,
		roadtype.Construction: 10,
	}
	p.GradientSpeedFactor = [8]float64{
		roadtype.GradientUp0: 1.0, roadtype.GradientUp1: 0.97, roadtype.GradientUp2: 0.92, roadtype.GradientUp3: 0.85,
		roadtype.GradientDown0: 1.0, roadtype.GradientDown1: 1.02, roadtype.GradientDown2: 1.03, roadtype.GradientDown3: 1.0,
	}
	p.TollPenalty = 0.1
	return p
}

// NewWalkProfile returns the stock pedestrian profile: a flat walking speed
// on every road type that permits pedestrian access, no toll aversion
// (tolls rarely apply to foot traffic), and a much shorter U-turn time since
// pedestrians reverse direction cheaply.
func NewWalkProfile() Profile {
	p := newBaseProfile(roadtype.NewPedestrianVehicle())
	walkSpeed := 5.0
	for _, rt := range []roadtype.RoadType{
		roadtype.Footway, roadtype.Pedestrian, roadtype.Path, roadtype.Steps,
		roadtype.Residential, roadtype.Service, roadtype.Track, roadtype.Unclassified,
		roadtype.LivingStreet, roadtype.Bridleway, roadtype.Tertiary, roadtype.Secondary,
		roadtype.Primary, roadtype.PassengerFerry, roadtype.Construction,
	} {
		p.SpeedKPH[rt] = walkSpeed
	}
	p.SpeedKPH[roadtype.Steps] = 2.0
	p.UTurnTime = 2.0
	p.TurnTime = 1.0
	return p
}

// NewCycleProfile returns the stock bicycle profile.
func NewCycleProfile() Profile {
	p := newBaseProfile(roadtype.NewBicycleVehicle())
	p.SpeedKPH = [32]float64{
		roadtype.Cycleway: 20, roadtype.Residential: 18, roadtype.Service: 15,
		roadtype.Tertiary: 18, roadtype.Secondary: 18, roadtype.Primary: 16,
		roadtype.Unclassified: 16, roadtype.Track: 12, roadtype.Path: 10,
		roadtype.LivingStreet: 14, roadtype.Bridleway: 10, roadtype.Unsurfaced: 10,
		roadtype.PassengerFerry: 15,
	}
	p.GradientSpeedFactor = [8]float64{
		roadtype.GradientUp0: 1.0, roadtype.GradientUp1: 0.85, roadtype.GradientUp2: 0.65, roadtype.GradientUp3: 0.45,
		roadtype.GradientDown0: 1.0, roadtype.GradientDown1: 1.1, roadtype.GradientDown2: 1.2, roadtype.GradientDown3: 1.25,
	}
	p.UTurnTime = 4.0
	return p
}

// NewHikeProfile returns the stock hiking profile: a slower flat speed than
// walking, applied to a wider set of unpaved road types, with a stronger
// gradient penalty uphill.
func NewHikeProfile() Profile {
	p := newBaseProfile(roadtype.NewPedestrianVehicle())
	hikeSpeed := 4.0
	for _, rt := range []roadtype.RoadType{
		roadtype.Footway, roadtype.Pedestrian, roadtype.Path, roadtype.Track,
		roadtype.Bridleway, roadtype.Unsurfaced, roadtype.Residential, roadtype.Service,
		roadtype.Steps, roadtype.Unclassified,
	} {
		p.SpeedKPH[rt] = hikeSpeed
	}
	p.SpeedKPH[roadtype.Steps] = 1.5
	p.GradientSpeedFactor = [8]float64{
		roadtype.GradientUp0: 1.0, roadtype.GradientUp1: 0.75, roadtype.GradientUp2: 0.55, roadtype.GradientUp3: 0.35,
		roadtype.GradientDown0: 1.0, roadtype.GradientDown1: 1.05, roadtype.GradientDown2: 1.05, roadtype.GradientDown3: 0.9,
	}
	p.UTurnTime = 2.0
	p.TurnTime = 1.0
	return p
}

// accessUsable reports whether the vehicle's access flags permit the arc at
// all, honoring the profile's restriction overrides. Independent of speed.
func (p Profile) accessUsable(attr roadtype.ArcAttributes) bool {
	override := p.RestrictionOverride[attr.RoadType()]
	return !attr.Forbidden(p.Vehicle.AccessFlags, override)
}

// accessUsableAtEndpoint relaxes accessUsable for the arc nearest the
// route's start or end point: a route is still allowed to begin or end on an
// otherwise forbidden arc (e.g. a private driveway), since the endpoint
// itself, not transit through it, is what the user asked for.
func (p Profile) accessUsableAtEndpoint(attr roadtype.ArcAttributes) bool {
	if p.accessUsable(attr) {
		return true
	}
	restrictions := attr.AccessRestrictions()
	return restrictions&roadtype.AccessWrongWay == 0 && restrictions&roadtype.AccessPedestrian != p.Vehicle.AccessFlags&roadtype.AccessPedestrian
}

// speedUsable reports whether the road type's own speed and bonus permit
// travel at all: a road type is usable iff speed+bonus is positive.
func (p Profile) speedUsable(rt roadtype.RoadType) bool {
	return p.SpeedKPH[rt]+p.Bonus[rt] > 0
}

// speedUsableAtEndpoint relaxes speedUsable for a road type whose bonus
// exactly cancels its speed (net-zero effective speed): still usable, but
// only as a route endpoint, the same way a residential or farm track is
// driveable right up to the door but not meant for transit.
func (p Profile) speedUsableAtEndpoint(rt roadtype.RoadType) bool {
	if p.speedUsable(rt) {
		return true
	}
	return p.SpeedKPH[rt] > 0 && p.SpeedKPH[rt]+p.Bonus[rt] == 0
}

// Usable reports whether the vehicle is permitted to traverse an arc with the
// given attributes at all: both its access flags and its road type's
// speed+bonus must allow it.
func (p Profile) Usable(attr roadtype.ArcAttributes) bool {
	return p.accessUsable(attr) && p.speedUsable(attr.RoadType())
}

// UsableAtEndpoint relaxes Usable for the arc nearest the route's start or
// end point, for both the access-restriction and the zero-effective-speed
// exceptions.
func (p Profile) UsableAtEndpoint(attr roadtype.ArcAttributes) bool {
	return p.accessUsableAtEndpoint(attr) && p.speedUsableAtEndpoint(attr.RoadType())
}
