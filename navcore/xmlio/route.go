// Package xmlio serializes navcore's route, profile and turn types to the
// XML and GPX wire formats, using the standard library's encoding/xml --
// the one ambient concern nothing in the reference corpus supplies a
// third-party library for.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

type xmlRoute struct {
	XMLName        xml.Name     `xml:"route"`
	DistanceMeters float64      `xml:"distanceMeters,attr"`
	TimeSeconds    float64      `xml:"timeSeconds,attr"`
	Segments       []xmlSegment `xml:"segment"`
}

type xmlSegment struct {
	DistanceMeters  float64    `xml:"distanceMeters,attr"`
	TimeSeconds     float64    `xml:"timeSeconds,attr"`
	TurnTimeSeconds float64    `xml:"turnTimeSeconds,attr,omitempty"`
	RoadType        uint8      `xml:"roadType,attr"`
	Gradient        uint8      `xml:"gradient,attr"`
	Name            string     `xml:"name,attr,omitempty"`
	Ref             string     `xml:"ref,attr,omitempty"`
	Section         int        `xml:"section,attr"`
	Signalized      bool       `xml:"signalized,attr,omitempty"`
	Restricted      bool       `xml:"restricted,attr,omitempty"`
	Attr            uint32     `xml:"attr,attr"`
	Turn            xmlTurn    `xml:"turn"`
	Points          []xmlPoint `xml:"point"`
}

type xmlPoint struct {
	X   float64 `xml:"x,attr"`
	Y   float64 `xml:"y,attr"`
	Lat float64 `xml:"lat,attr,omitempty"`
	Lon float64 `xml:"lon,attr,omitempty"`
}

// WriteRoute serializes a route.Route as an XML document. proj converts each
// segment's map-unit geometry to latitude/longitude for the wire format,
// mirroring WriteGPX's use of the same injected projection.
func WriteRoute(w io.Writer, r *route.Route, proj geo.InverseProjection) error {
	xr := xmlRoute{
		DistanceMeters: r.DistanceMeters,
		TimeSeconds:    r.TimeSeconds,
	}
	for _, s := range r.Segments {
		xs := xmlSegment{
			DistanceMeters:  s.DistanceMeters,
			TimeSeconds:     s.TimeSeconds,
			TurnTimeSeconds: s.TurnTimeSeconds,
			RoadType:        uint8(s.Attr.RoadType()),
			Gradient:        uint8(s.Gradient),
			Name:            s.Name,
			Ref:             s.Ref,
			Section:         s.Section,
			Signalized:      s.Signalized,
			Restricted:      s.Restricted,
			Attr:            uint32(s.Attr),
			Turn:            toXMLTurn(s.Turn),
		}
		for _, p := range s.Path {
			xp := xmlPoint{X: p.X, Y: p.Y}
			if proj != nil {
				ll := proj(p)
				xp.Lat, xp.Lon = ll.Lat, ll.Lon
			}
			xs.Points = append(xs.Points, xp)
		}
		xr.Segments = append(xr.Segments, xs)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return enc.Encode(xr)
}

// ReadRoute deserializes an XML document written by WriteRoute back into a
// route.Route. The result is round-trip idempotent for every field WriteRoute
// writes; the profile used to originally plan the route is not part of the
// wire format and must be supplied separately by the caller.
func ReadRoute(r io.Reader, p profile.Profile) (*route.Route, error) {
	var xr xmlRoute
	if err := xml.NewDecoder(r).Decode(&xr); err != nil {
		return nil, fmt.Errorf("xmlio: decode route: %w", err)
	}

	b := route.NewBuilder()
	for _, xs := range xr.Segments {
		path := make(geo.Contour, len(xs.Points))
		for i, xp := range xs.Points {
			path[i] = geo.MapPoint{X: xp.X, Y: xp.Y}
		}
		seg := route.Segment{
			DistanceMeters:  xs.DistanceMeters,
			TimeSeconds:     xs.TimeSeconds,
			TurnTimeSeconds: xs.TurnTimeSeconds,
			Name:            xs.Name,
			Ref:             xs.Ref,
			Section:         xs.Section,
			Signalized:      xs.Signalized,
			Restricted:      xs.Restricted,
			Path:            path,
			Turn:            fromXMLTurn(xs.Turn),
		}
		seg.Attr = roadtype.ArcAttributes(xs.Attr)
		seg.Gradient = roadtype.GradientBin(xs.Gradient)
		if err := b.AppendSegment(seg); err != nil {
			return nil, fmt.Errorf("xmlio: %w", err)
		}
	}
	return b.Finish(p), nil
}

// WriteTurn serializes a single turn descriptor as a standalone XML element.
func WriteTurn(w io.Writer, d turn.Descriptor) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(toXMLTurn(d))
}
