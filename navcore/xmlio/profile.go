package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
)

type xmlProfile struct {
	XMLName              xml.Name     `xml:"routeProfile"`
	Shortest             bool         `xml:"shortest,attr"`
	TurnTime             float64      `xml:"turnTime,attr"`
	UTurnTime            float64      `xml:"uTurnTime,attr"`
	CrossTrafficTurnTime float64      `xml:"crossTrafficTurnTime,attr"`
	TrafficLightTime     float64      `xml:"trafficLightTime,attr"`
	TollPenalty          float64      `xml:"tollPenalty,attr"`
	VehicleAccessFlags   uint32       `xml:"vehicleAccessFlags,attr"`
	RoadTypes            []xmlRoadType `xml:"roadType"`
	Gradients            []xmlGradient `xml:"gradient"`
}

type xmlRoadType struct {
	Index               int     `xml:"index,attr"`
	Name                string  `xml:"name,attr"`
	SpeedKPH            float64 `xml:"speedKPH,attr"`
	Bonus               float64 `xml:"bonus,attr"`
	RestrictionOverride uint32  `xml:"restrictionOverride,attr"`
	GradientApplicable  bool    `xml:"gradientApplicable,attr"`
}

type xmlGradient struct {
	Index       int     `xml:"index,attr"`
	Name        string  `xml:"name,attr"`
	SpeedFactor float64 `xml:"speedFactor,attr"`
	Bonus       float64 `xml:"bonus,attr"`
}

// WriteProfile serializes a profile.Profile as an XML document, one element
// per road type and gradient bin so every speed, bonus, override and turn
// tunable round-trips exactly. Of the vehicle, only its access flags are
// written: the dimensions (weight, axle load, height, width, length) and
// the hazardous-goods flag are not, and ReadProfile returns them as zero.
func WriteProfile(w io.Writer, p profile.Profile) error {
	xp := xmlProfile{
		Shortest:             p.Shortest,
		TurnTime:             p.TurnTime,
		UTurnTime:            p.UTurnTime,
		CrossTrafficTurnTime: p.CrossTrafficTurnTime,
		TrafficLightTime:     p.TrafficLightTime,
		TollPenalty:          p.TollPenalty,
		VehicleAccessFlags:   uint32(p.Vehicle.AccessFlags),
	}
	for i := 0; i < 32; i++ {
		rt := roadtype.RoadType(i)
		xp.RoadTypes = append(xp.RoadTypes, xmlRoadType{
			Index:               i,
			Name:                rt.String(),
			SpeedKPH:            p.SpeedKPH[i],
			Bonus:               p.Bonus[i],
			RestrictionOverride: uint32(p.RestrictionOverride[i]),
			GradientApplicable:  p.GradientApplicability[i],
		})
	}
	for i := 0; i < 8; i++ {
		gb := roadtype.GradientBin(i)
		xp.Gradients = append(xp.Gradients, xmlGradient{
			Index:       i,
			Name:        gb.String(),
			SpeedFactor: p.GradientSpeedFactor[i],
			Bonus:       p.GradientBonus[i],
		})
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return enc.Encode(xp)
}

// ReadProfile deserializes an XML document written by WriteProfile.
func ReadProfile(r io.Reader) (profile.Profile, error) {
	var xp xmlProfile
	if err := xml.NewDecoder(r).Decode(&xp); err != nil {
		return profile.Profile{}, fmt.Errorf("xmlio: decode profile: %w", err)
	}

	p := profile.Profile{
		Shortest:             xp.Shortest,
		TurnTime:             xp.TurnTime,
		UTurnTime:            xp.UTurnTime,
		CrossTrafficTurnTime: xp.CrossTrafficTurnTime,
		TrafficLightTime:     xp.TrafficLightTime,
		TollPenalty:          xp.TollPenalty,
	}
	p.Vehicle.AccessFlags = roadtype.ArcAttributes(xp.VehicleAccessFlags)
	p.Vehicle.Normalize()

	for _, rt := range xp.RoadTypes {
		if rt.Index < 0 || rt.Index >= 32 {
			continue
		}
		p.SpeedKPH[rt.Index] = rt.SpeedKPH
		p.Bonus[rt.Index] = rt.Bonus
		p.RestrictionOverride[rt.Index] = roadtype.ArcAttributes(rt.RestrictionOverride)
		p.GradientApplicability[rt.Index] = rt.GradientApplicable
	}
	for _, g := range xp.Gradients {
		if g.Index < 0 || g.Index >= 8 {
			continue
		}
		p.GradientSpeedFactor[g.Index] = g.SpeedFactor
		p.GradientBonus[g.Index] = g.Bonus
	}

	return p, nil
}
