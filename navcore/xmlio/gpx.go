package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/route"
)

type gpxRoot struct {
	XMLName xml.Name   `xml:"gpx"`
	Version string     `xml:"version,attr"`
	Creator string     `xml:"creator,attr"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name string        `xml:"name,omitempty"`
	Segs []gpxTrackSeg `xml:"trkseg"`
}

type gpxTrackSeg struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Desc string  `xml:"desc,omitempty"`
}

// WriteGPX serializes a route.Route as a GPX document: one <trkseg> per
// section, with one track point per segment boundary plus the route's start
// point, so a section with N segments produces N+1 track points. Each point
// after the first carries the corresponding segment's turn instruction as
// its <desc>, when non-trivial.
func WriteGPX(w io.Writer, r *route.Route, proj geo.InverseProjection) error {
	root := gpxRoot{Version: "1.1", Creator: "navcore"}

	var track gpxTrack
	var curSeg *gpxTrackSeg
	curSection := -1

	for _, s := range r.Segments {
		if s.Section != curSection {
			if curSeg != nil {
				track.Segs = append(track.Segs, *curSeg)
			}
			curSeg = &gpxTrackSeg{}
			curSection = s.Section
			if len(s.Path) > 0 {
				start := proj(s.Path[0])
				curSeg.Points = append(curSeg.Points, gpxPoint{Lat: start.Lat, Lon: start.Lon})
			}
		}
		if len(s.Path) == 0 {
			continue
		}
		end := proj(s.Path[len(s.Path)-1])
		desc := ""
		if s.Turn.Type.String() != "ahead" {
			desc = s.Turn.String()
		}
		curSeg.Points = append(curSeg.Points, gpxPoint{Lat: end.Lat, Lon: end.Lon, Desc: desc})
	}
	if curSeg != nil {
		track.Segs = append(track.Segs, *curSeg)
	}
	root.Tracks = append(root.Tracks, track)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("xmlio: encode gpx: %w", err)
	}
	return nil
}
