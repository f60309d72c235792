// Package turn classifies the angle between an incoming and outgoing road
// segment into a human turn instruction (bear left, sharp right, ...),
// tracks roundabout traversal state, and builds the richer Descriptor the
// navigator and XML writers consume.
package turn

import (
	"fmt"
	"math"
)

// Type is a turn classification bucket.
type Type uint8

const (
	Ahead Type = iota
	BearRight
	Right
	SharpRight
	Around
	SharpLeft
	Left
	BearLeft
)

var typeNames = [...]string{
	"ahead", "bear_right", "right", "sharp_right",
	"around", "sharp_left", "left", "bear_left",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Classify buckets a signed turn angle in degrees (positive = right, per the
// geo package's convention) into a Type, following the boundary table: a
// turn within 7.5 degrees of a full reversal (|angle| > 172.5) is
// classified Around rather than Sharp{Left,Right} -- the one case the
// original's left-to-right SetTurn cascade folds into the sharp buckets, but
// which every caller-facing instruction set needs distinguished.
func Classify(angleDeg float64) Type {
	a := angleDeg
	switch {
	case a > 172.5 || a < -172.5:
		return Around
	case a > 120:
		return SharpRight
	case a > 45:
		return Right
	case a > 15:
		return BearRight
	case a > -15:
		return Ahead
	case a > -45:
		return BearLeft
	case a > -120:
		return Left
	default:
		return SharpLeft
	}
}

// RoundaboutState describes a turn's relationship to a roundabout.
type RoundaboutState uint8

const (
	NotRoundabout RoundaboutState = iota
	EnterRoundabout
	OnRoundabout
	LeaveRoundabout
)

// Descriptor is the full description of one turn along a route: its raw
// angle and bucketed Type, roundabout participation, the junction it occurs
// at, and the alternative choices available there (used to distinguish a
// "bear right" fork from an "ahead" through a plain T-junction).
type Descriptor struct {
	AngleDeg          float64
	Type              Type
	Roundabout        RoundaboutState
	ExitNumber        int
	LeftAlternatives  int
	RightAlternatives int
	IsFork            bool
	IsTurnOff         bool
	JunctionName      string
	JunctionRef       string
	Continue          bool // same road name/ref/hierarchy as the segment before
}

// forkToleranceDeg is the angular window within which an alternative road at
// a junction is considered a "fork" rather than a side road sharp enough to
// be ignored by the turn-off override.
const forkToleranceDeg = 22.5

// IsFork reports whether a candidate alternative road, at the given angle
// from the turn actually taken, branches closely enough to count as a fork
// of the same road rather than an unrelated side street.
func IsFork(angleToAlternative float64) bool {
	return math.Abs(angleToAlternative) <= forkToleranceDeg
}

// NewDescriptor builds a Descriptor from the raw turn geometry and junction
// context. It applies the fork/turn-off override: an Ahead turn at a
// junction with any alternative road is promoted to BearRight when there is
// an alternative on the left, and to BearLeft otherwise, since "continue
// ahead" is misleading when the road forks.
func NewDescriptor(angleDeg float64, leftAlternatives, rightAlternatives int, continueSameRoad bool, junctionName, junctionRef string) Descriptor {
	t := Classify(angleDeg)
	isFork := (leftAlternatives > 0 || rightAlternatives > 0)
	isTurnOff := false

	if t == Ahead && isFork {
		isTurnOff = true
		if leftAlternatives > 0 && rightAlternatives == 0 {
			t = BearRight
		} else if rightAlternatives > 0 && leftAlternatives == 0 {
			t = BearLeft
		} else if rightAlternatives > 0 {
			// alternatives on both sides: a left alternative exists, so bear right
			t = BearRight
		}
	}

	return Descriptor{
		AngleDeg:          angleDeg,
		Type:              t,
		LeftAlternatives:  leftAlternatives,
		RightAlternatives: rightAlternatives,
		IsFork:            isFork,
		IsTurnOff:         isTurnOff,
		JunctionName:      junctionName,
		JunctionRef:       junctionRef,
		Continue:          continueSameRoad,
	}
}

// IsSharp reports whether the turn is SharpLeft, SharpRight or Around.
func (d Descriptor) IsSharp() bool {
	return d.Type == SharpLeft || d.Type == SharpRight || d.Type == Around
}

// String renders a short human-readable instruction, e.g. "bear_right onto
// Main St (exit 3)".
func (d Descriptor) String() string {
	s := d.Type.String()
	if d.JunctionName != "" {
		s = fmt.Sprintf("%s onto %s", s, d.JunctionName)
	}
	if d.Roundabout == LeaveRoundabout && d.ExitNumber > 0 {
		s = fmt.Sprintf("%s (exit %d)", s, d.ExitNumber)
	}
	return s
}
