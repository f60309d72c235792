package profile

import (
	"math"

	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

// Cost is the router's unit of comparison: seconds of travel time, or meters
// of distance when a profile is in "shortest" mode. Costs always add and
// compare meaningfully within a single profile, never across profiles.
type Cost float64

// Model evaluates a Profile against concrete arcs and turns. It is
// stateless and safe for concurrent use by multiple router searches sharing
// one profile.
type Model struct {
	Profile Profile
}

// NewModel wraps a profile for use by the router.
func NewModel(p Profile) Model {
	return Model{Profile: p}
}

// Traverse returns the cost of an arc of the given length in meters, or an
// error if the vehicle may not use it at all.
func (m Model) Traverse(attr roadtype.ArcAttributes, gradient roadtype.GradientBin, lengthMeters float64, endpoint bool) (Cost, error) {
	usable := m.Profile.Usable(attr)
	if endpoint {
		usable = m.Profile.UsableAtEndpoint(attr)
	}
	if !usable {
		return 0, errForbidden{attr.RoadType()}
	}

	if m.Profile.Shortest {
		return Cost(lengthMeters), nil
	}

	rt := attr.RoadType()
	speed := m.Profile.SpeedKPH[rt] + m.Profile.Bonus[rt]
	if speed <= 0 && endpoint {
		// net-zero effective speed is usable only at an endpoint; cost it
		// at the base speed.
		speed = m.Profile.SpeedKPH[rt]
	}
	if speed <= 0 {
		return 0, errForbidden{rt}
	}

	if m.Profile.GradientApplicability[rt] {
		factor := m.Profile.GradientSpeedFactor[gradient]
		if factor <= 0 {
			factor = 1
		}
		speed *= factor
	}

	seconds := (lengthMeters / 1000) / speed * 3600
	if m.Profile.GradientApplicability[rt] {
		seconds -= m.Profile.GradientBonus[gradient]
	}
	if seconds < 0 {
		seconds = 0
	}

	if attr.IsToll() && m.Profile.TollPenalty > 0 {
		p := m.Profile.TollPenalty
		if p >= 1 {
			p = 0.999999
		}
		seconds *= 1 + p/(1-p)
	}

	return Cost(seconds), nil
}

// TurnTime returns the extra time cost, in seconds, of making a turn of the
// given signed angle (positive = right, per geo.TurnAngle's convention) from
// one road type to another, at a junction that may or may not be
// signalized, optionally crossing opposing traffic.
//
// Rules, matching the original profile semantics: an angle within
// uTurnToleranceDeg of 180 degrees costs UTurnTime. A cross-traffic turn
// (e.g. a left turn against oncoming traffic when driving on the right)
// doubles CrossTrafficTurnTime. A turn continuing ahead on the same named
// road and hierarchy is free. Every other turn costs TurnTime. A signalized
// junction adds TrafficLightTime on top.
func (m Model) TurnTime(angleDeg float64, crossingTraffic, signalized, sameRoadAhead bool) Cost {
	var t float64
	switch {
	case math.Abs(math.Abs(angleDeg)-180) <= uTurnToleranceDeg:
		t = m.Profile.UTurnTime
	case sameRoadAhead && math.Abs(angleDeg) < 15:
		t = 0
	case crossingTraffic:
		t = 2 * m.Profile.CrossTrafficTurnTime
	default:
		t = m.Profile.TurnTime
	}
	if signalized {
		t += m.Profile.TrafficLightTime
	}
	return Cost(t)
}

// errForbidden is returned by Traverse when the vehicle may not use an arc.
type errForbidden struct {
	roadType roadtype.RoadType
}

func (e errForbidden) Error() string {
	return "profile: vehicle forbidden on road type " + e.roadType.String()
}
