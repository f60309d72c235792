package xmlio

import (
	"encoding/xml"

	"github.com/bwise1/waze_kibris/navcore/turn"
)

// xmlTurn is the wire shape for turn.Descriptor, exposing the attribute list
// the Turn XML format defines: angle, type, roundabout state, exit number,
// the left/right alternative counts, fork/turn-off flags and junction naming.
type xmlTurn struct {
	XMLName      xml.Name `xml:"turn"`
	AngleDeg     float64  `xml:"angleDeg,attr"`
	Type         string   `xml:"type,attr"`
	Roundabout   string   `xml:"roundabout,attr,omitempty"`
	ExitNumber   int      `xml:"exitNumber,attr,omitempty"`
	LeftAlts     int      `xml:"leftAlternatives,attr,omitempty"`
	RightAlts    int      `xml:"rightAlternatives,attr,omitempty"`
	IsFork       bool     `xml:"isFork,attr,omitempty"`
	IsTurnOff    bool     `xml:"isTurnOff,attr,omitempty"`
	JunctionName string   `xml:"junctionName,attr,omitempty"`
	JunctionRef  string   `xml:"junctionRef,attr,omitempty"`
	Continue     bool     `xml:"continue,attr,omitempty"`
}

var roundaboutNames = [...]string{"none", "enter", "on", "leave"}

func toXMLTurn(d turn.Descriptor) xmlTurn {
	rb := ""
	if d.Roundabout != turn.NotRoundabout {
		rb = roundaboutNames[d.Roundabout]
	}
	return xmlTurn{
		AngleDeg:     d.AngleDeg,
		Type:         d.Type.String(),
		Roundabout:   rb,
		ExitNumber:   d.ExitNumber,
		LeftAlts:     d.LeftAlternatives,
		RightAlts:    d.RightAlternatives,
		IsFork:       d.IsFork,
		IsTurnOff:    d.IsTurnOff,
		JunctionName: d.JunctionName,
		JunctionRef:  d.JunctionRef,
		Continue:     d.Continue,
	}
}

func fromXMLTurn(x xmlTurn) turn.Descriptor {
	d := turn.Descriptor{
		AngleDeg:          x.AngleDeg,
		Type:              turnTypeFromName(x.Type),
		ExitNumber:        x.ExitNumber,
		LeftAlternatives:  x.LeftAlts,
		RightAlternatives: x.RightAlts,
		IsFork:            x.IsFork,
		IsTurnOff:         x.IsTurnOff,
		JunctionName:      x.JunctionName,
		JunctionRef:       x.JunctionRef,
		Continue:          x.Continue,
	}
	for i, name := range roundaboutNames {
		if name == x.Roundabout {
			d.Roundabout = turn.RoundaboutState(i)
		}
	}
	return d
}

func turnTypeFromName(name string) turn.Type {
	for t := turn.Ahead; t <= turn.BearLeft; t++ {
		if t.String() == name {
			return t
		}
	}
	return turn.Ahead
}
