package xmlio

import (
	"bytes"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

func buildSampleRoute(t *testing.T) *route.Route {
	t.Helper()
	attr, err := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp1, roadtype.DriveOnRightTwoWay, false, true, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := route.NewBuilder()
	if err := b.AppendSegment(route.Segment{
		DistanceMeters: 123.5,
		TimeSeconds:    45.6,
		Attr:           attr,
		Gradient:       roadtype.GradientUp1,
		Name:           "Main St",
		Ref:            "A1",
		Path:           geo.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 123.5, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Right, AngleDeg: 80, JunctionName: "Oak Ave", Continue: true},
		Section:        0,
		Signalized:     true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b.Finish(profile.NewCarProfile())
}

func TestWriteReadRouteRoundTrip(t *testing.T) {
	r := buildSampleRoute(t)

	proj := func(p geo.MapPoint) geo.Point { return geo.Point{Lat: p.Y, Lon: p.X} }

	var buf bytes.Buffer
	if err := WriteRoute(&buf, r, proj); err != nil {
		t.Fatalf("WriteRoute error: %v", err)
	}

	got, err := ReadRoute(&buf, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("ReadRoute error: %v", err)
	}

	if got.DistanceMeters != r.DistanceMeters {
		t.Errorf("DistanceMeters = %v, want %v", got.DistanceMeters, r.DistanceMeters)
	}
	if len(got.Segments) != len(r.Segments) {
		t.Fatalf("len(Segments) = %d, want %d", len(got.Segments), len(r.Segments))
	}
	gs, ws := got.Segments[0], r.Segments[0]
	if gs.Name != ws.Name || gs.Ref != ws.Ref {
		t.Errorf("segment name/ref = %q/%q, want %q/%q", gs.Name, gs.Ref, ws.Name, ws.Ref)
	}
	if gs.Attr.RoadType() != ws.Attr.RoadType() {
		t.Errorf("segment road type = %v, want %v", gs.Attr.RoadType(), ws.Attr.RoadType())
	}
	if !gs.Attr.IsToll() {
		t.Error("expected toll flag to round-trip")
	}
	if gs.Turn.Type != ws.Turn.Type || gs.Turn.JunctionName != ws.Turn.JunctionName {
		t.Errorf("turn = %+v, want %+v", gs.Turn, ws.Turn)
	}
	if len(gs.Path) != len(ws.Path) {
		t.Errorf("path length = %d, want %d", len(gs.Path), len(ws.Path))
	}
}

func TestWriteTurn(t *testing.T) {
	var buf bytes.Buffer
	d := turn.Descriptor{Type: turn.Left, AngleDeg: -60, JunctionName: "Elm St"}
	if err := WriteTurn(&buf, d); err != nil {
		t.Fatalf("WriteTurn error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`type="left"`)) {
		t.Errorf("expected encoded turn to contain type=\"left\", got %s", buf.String())
	}
}
