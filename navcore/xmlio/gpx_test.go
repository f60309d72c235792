package xmlio

import (
	"bytes"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
)

func identityProjection(p geo.MapPoint) geo.Point {
	return geo.Point{Lat: p.Y, Lon: p.X}
}

func TestWriteGPXProducesOnePointPerSegmentBoundary(t *testing.T) {
	r := buildSampleRoute(t)

	var buf bytes.Buffer
	if err := WriteGPX(&buf, r, identityProjection); err != nil {
		t.Fatalf("WriteGPX error: %v", err)
	}

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("<gpx")) {
		t.Errorf("expected GPX output to contain a <gpx> root element, got %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("<trkpt")) {
		t.Errorf("expected GPX output to contain track points, got %s", out)
	}
	// One segment produces exactly 2 track points: the route start plus the
	// segment end.
	if got := bytes.Count(buf.Bytes(), []byte("<trkpt")); got != 2 {
		t.Errorf("trkpt count = %d, want 2", got)
	}
}

func TestWriteGPXIncludesTurnDescriptionWhenNotAhead(t *testing.T) {
	r := buildSampleRoute(t)
	var buf bytes.Buffer
	if err := WriteGPX(&buf, r, identityProjection); err != nil {
		t.Fatalf("WriteGPX error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`<desc>right`)) {
		t.Errorf("expected a non-ahead turn to produce a desc element, got %s", buf.String())
	}
}
