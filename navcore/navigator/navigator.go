// Package navigator drives turn-by-turn navigation: it consumes a stream of
// position fixes, tracks progress along a route.Route, classifies drift
// on/off the route, re-routes when configured to, emits turn instructions
// ahead of each junction, and reports nearby objects of interest as they
// enter and leave range -- all through a synchronous Observer callback
// interface, with no internal goroutines of its own.
package navigator

import (
	"time"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// State is the navigator's overall progress state.
type State int

const (
	StateNone State = iota
	StateNoPosition
	StateOnRoute
	StateOffRoute
	StateReRouteNeeded
	StateReRouteDone
	StateTurnRound
	StateArrived
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateNoPosition:
		return "no_position"
	case StateOnRoute:
		return "on_route"
	case StateOffRoute:
		return "off_route"
	case StateReRouteNeeded:
		return "re_route_needed"
	case StateReRouteDone:
		return "re_route_done"
	case StateTurnRound:
		return "turn_round"
	case StateArrived:
		return "arrived"
	default:
		return "unknown"
	}
}

// Fix validity bits, mirroring the original navigation data's validity mask.
const (
	ValidTime uint8 = 1 << iota
	ValidPosition
	ValidSpeed
	ValidCourse
	ValidHeight
)

// Fix is one incoming position update.
type Fix struct {
	Time       time.Time
	Position   geo.MapPoint
	SpeedMPS   float64
	CourseDeg  float64
	HeightM    float64
	Valid      uint8
}

// valid reports whether every bit in mask is set on the fix.
func (f Fix) valid(mask uint8) bool { return f.Valid&mask == mask }

// Param configures navigator behavior, defaulting to the original navigation
// parameter set.
type Param struct {
	MinimumFixDistanceMeters float64
	RouteDistanceToleranceMeters float64
	RouteTimeToleranceSeconds float64
	AutoReRoute      bool
	NavigationEnabled bool
}

// DefaultParam returns the stock navigator parameters.
func DefaultParam() Param {
	return Param{
		MinimumFixDistanceMeters:     5,
		RouteDistanceToleranceMeters: 20,
		RouteTimeToleranceSeconds:    30,
		AutoReRoute:                  true,
		NavigationEnabled:            true,
	}
}

// Turn is the navigator's view of an upcoming turn: the route's turn
// descriptor plus how far ahead it is.
type Turn struct {
	turn.Descriptor
	DistanceMeters float64
	TimeSeconds    float64
}

// Observer receives navigator events synchronously, in the same goroutine
// that called OnFix. Implementations must not block.
type Observer interface {
	OnTurn(first, second, continuation *Turn)
	OnTurnRound()
	OnNewRoute(r *route.Route)
	OnPositionKnown()
	OnPositionUnknown()
	OnAddNearbyObject(obj NearbyObject)
	OnUpdateNearbyObject(obj NearbyObject)
	OnRemoveNearbyObject(obj NearbyObject)
}

// turnLookaheadMeters is how far past the first upcoming significant turn a
// second significant turn may lie and still be reported alongside it.
const turnLookaheadMeters = 100.0

// turnRoundCourseDeltaDeg is the divergence between course and route tangent
// that, sustained across consecutive fixes, is classified as the user having
// turned around rather than merely drifted off route.
const turnRoundCourseDeltaDeg = 135.0

// Navigator tracks one vehicle's progress along a route.
type Navigator struct {
	param    Param
	observer Observer

	route *route.Route
	index *route.Index

	state State

	distanceAlongRoute float64
	lastFixPosition    geo.MapPoint
	haveLastFix        bool

	offRouteSince time.Time
	offRoute      bool

	turnRoundCandidateSince time.Time
	turnRoundCandidate      bool

	lastTurnKey string

	nearby map[string]*nearbyEntry
}

// New creates a Navigator with the given parameters and observer. The
// observer may be nil, in which case events are silently dropped -- useful
// for tests that only inspect State()/DistanceAlongRoute() directly.
func New(param Param, observer Observer) *Navigator {
	return &Navigator{
		param:    param,
		observer: observer,
		state:    StateNone,
		nearby:   make(map[string]*nearbyEntry),
	}
}

// State returns the navigator's current state.
func (n *Navigator) State() State { return n.state }

// Route returns the route currently installed on this navigator, or nil if
// none has been set yet.
func (n *Navigator) Route() *route.Route { return n.route }

// DistanceAlongRouteMeters returns the last computed progress along the
// route, valid only once State is OnRoute, OffRoute, ReRouteNeeded or
// ReRouteDone.
func (n *Navigator) DistanceAlongRouteMeters() float64 { return n.distanceAlongRoute }

// SetRoute installs a new route to navigate and transitions to NoPosition,
// per the state machine's rule that acquiring a route always resets position
// tracking.
func (n *Navigator) SetRoute(r *route.Route) {
	n.route = r
	n.index = route.NewIndex(r)
	n.state = StateNoPosition
	n.haveLastFix = false
	n.offRoute = false
	n.turnRoundCandidate = false
	n.lastTurnKey = ""
	if n.observer != nil {
		n.observer.OnNewRoute(r)
	}
}

// OnFix processes one incoming position update, advancing the state machine
// and firing observer events as needed.
func (n *Navigator) OnFix(f Fix) {
	if !n.param.NavigationEnabled || n.route == nil {
		return
	}

	if !f.valid(ValidPosition) {
		n.transitionTo(StateNoPosition)
		return
	}

	if n.haveLastFix {
		moved := geo.PlanarDistance(n.lastFixPosition, f.Position)
		if moved < n.param.MinimumFixDistanceMeters {
			return
		}
	}

	wasNoPosition := n.state == StateNone || n.state == StateNoPosition
	n.lastFixPosition = f.Position
	n.haveLastFix = true

	info, found := n.index.NearestSegment(f.Position, -1, n.distanceAlongRoute)
	if !found {
		n.transitionTo(StateNoPosition)
		return
	}

	n.distanceAlongRoute = info.DistanceAlongRouteMeters
	withinTolerance := info.DistanceMeters <= n.param.RouteDistanceToleranceMeters

	if wasNoPosition {
		if n.observer != nil {
			n.observer.OnPositionKnown()
		}
	}

	if f.valid(ValidCourse) {
		n.updateTurnRoundDetection(f)
	}

	n.refreshNearbyObjects(f.Position)

	if withinTolerance {
		n.offRoute = false
		if n.state != StateTurnRound {
			n.transitionTo(StateOnRoute)
		}
		n.emitUpcomingTurns()
		n.checkArrival()
	} else {
		n.handleOffRoute(f)
	}
}

func (n *Navigator) transitionTo(s State) {
	if s == StateNoPosition && n.state != StateNoPosition {
		n.offRoute = false
		n.haveLastFix = false
		if n.observer != nil {
			n.observer.OnPositionUnknown()
		}
	}
	n.state = s
}

func (n *Navigator) handleOffRoute(f Fix) {
	if !n.offRoute {
		n.offRoute = true
		n.offRouteSince = f.Time
		n.state = StateOffRoute
		return
	}

	n.state = StateOffRoute
	if !n.param.AutoReRoute {
		return
	}

	if f.Time.Sub(n.offRouteSince) >= time.Duration(n.param.RouteTimeToleranceSeconds*float64(time.Second)) {
		n.state = StateReRouteNeeded
	}
}

// AcceptReRoute transitions a navigator in ReRouteNeeded to ReRouteDone once
// a caller has replanned and installed a new route via SetRoute; call this
// instead of SetRoute if the new route should be reported as the completion
// of a requested re-route rather than a fresh route assignment.
func (n *Navigator) AcceptReRoute(r *route.Route) {
	n.SetRoute(r)
	n.state = StateReRouteDone
}

func (n *Navigator) updateTurnRoundDetection(f Fix) {
	tangent := geo.PlanarHeading(n.lastFixPosition, f.Position)
	delta := geo.NormalizeAngle(f.CourseDeg - tangent)
	diverged := delta > turnRoundCourseDeltaDeg || delta < -turnRoundCourseDeltaDeg

	if diverged {
		if !n.turnRoundCandidate {
			n.turnRoundCandidate = true
			n.turnRoundCandidateSince = f.Time
			return
		}
		moved := geo.PlanarDistance(n.lastFixPosition, f.Position)
		if moved >= n.param.MinimumFixDistanceMeters {
			n.state = StateTurnRound
			n.turnRoundCandidate = false
			if n.observer != nil {
				n.observer.OnTurnRound()
			}
		}
	} else {
		n.turnRoundCandidate = false
	}
}

func (n *Navigator) checkArrival() {
	if n.route == nil || len(n.route.Segments) == 0 {
		return
	}
	remaining := n.route.DistanceMeters - n.distanceAlongRoute
	if remaining <= n.param.MinimumFixDistanceMeters {
		n.state = StateArrived
	}
}

// isSignificantTurn reports whether a segment boundary is a turn worth
// announcing on its own -- anything other than an Ahead continuation of the
// same road.
func isSignificantTurn(d turn.Descriptor) bool {
	return !(d.Type == turn.Ahead && d.Continue)
}

// emitUpcomingTurns finds the next significant turn ahead of the current
// position -- searching forward with no distance cap, since the next turn
// may be arbitrarily far down a long segment -- and reports it via OnTurn
// along with a further significant turn within turnLookaheadMeters past it
// and any Ahead/continue boundary crossed on the way there. Re-emits only
// when the identity of the reported turn set changes -- consecutive fixes
// approaching the same turn do not refire the event.
func (n *Navigator) emitUpcomingTurns() {
	if n.observer == nil || n.route == nil {
		return
	}

	remaining := n.distanceAlongRoute
	if remaining >= n.route.DistanceMeters {
		return
	}

	var continuation, first, second *Turn
	cum := 0.0
	for _, s := range n.route.Segments {
		segEnd := cum + s.DistanceMeters
		cum = segEnd
		if segEnd < remaining {
			continue
		}

		significant := isSignificantTurn(s.Turn)

		if first == nil {
			if !significant {
				if continuation == nil {
					continuation = &Turn{
						Descriptor:     s.Turn,
						DistanceMeters: segEnd - remaining,
						TimeSeconds:    s.TimeSeconds,
					}
				}
				continue
			}
			first = &Turn{
				Descriptor:     s.Turn,
				DistanceMeters: segEnd - remaining,
				TimeSeconds:    s.TimeSeconds,
			}
			continue
		}

		if !significant {
			continue
		}

		distancePastFirst := (segEnd - remaining) - first.DistanceMeters
		if distancePastFirst > turnLookaheadMeters {
			break
		}
		second = &Turn{
			Descriptor:     s.Turn,
			DistanceMeters: distancePastFirst,
			TimeSeconds:    s.TimeSeconds,
		}
		break
	}

	if first == nil {
		return
	}

	keyTurns := []Turn{*first}
	if second != nil {
		keyTurns = append(keyTurns, *second)
	}
	if continuation != nil {
		keyTurns = append(keyTurns, *continuation)
	}
	key := turnSetKey(keyTurns)
	if key == n.lastTurnKey {
		return
	}
	n.lastTurnKey = key
	n.observer.OnTurn(first, second, continuation)
}

func turnSetKey(turns []Turn) string {
	key := ""
	for _, t := range turns {
		bucket := int(t.DistanceMeters / 10)
		key += t.Type.String() + ":" + itoa(bucket) + ";"
	}
	return key
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
