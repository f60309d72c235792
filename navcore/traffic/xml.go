package traffic

import (
	"encoding/xml"
	"io"
)

type xmlInfo struct {
	XMLName      xml.Name `xml:"trafficInfo"`
	ID           string   `xml:"id,attr"`
	Severity     uint8    `xml:"severity,attr"`
	DelaySeconds float64  `xml:"delaySeconds,attr"`
	Description  string   `xml:"description,attr,omitempty"`
	Location     xmlLocationRef `xml:"location"`
}

type xmlLocationRef struct {
	Type        uint8   `xml:"type,attr"`
	Lat         float64 `xml:"lat,attr"`
	Lon         float64 `xml:"lon,attr"`
	EndLat      float64 `xml:"endLat,attr,omitempty"`
	EndLon      float64 `xml:"endLon,attr,omitempty"`
	Side        uint8   `xml:"side,attr"`
	Orientation uint8   `xml:"orientation,attr"`
}

// WriteXML serializes a traffic Info as a standalone XML element.
func WriteXML(w io.Writer, info Info) error {
	x := xmlInfo{
		ID:           info.ID,
		Severity:     uint8(info.Severity),
		DelaySeconds: info.DelaySeconds,
		Description:  info.Description,
		Location: xmlLocationRef{
			Type:        uint8(info.Location.Type),
			Lat:         info.Location.Lat,
			Lon:         info.Location.Lon,
			EndLat:      info.Location.EndLat,
			EndLon:      info.Location.EndLon,
			Side:        uint8(info.Location.Side),
			Orientation: uint8(info.Location.Orientation),
		},
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(x)
}
