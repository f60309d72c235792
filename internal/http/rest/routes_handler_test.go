package rest

import (
	"context"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/roadtype"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

func residentialArc(speed int) roadtype.ArcAttributes {
	a, _ := roadtype.NewArcAttributes(roadtype.Residential, roadtype.GradientUp0, roadtype.DriveOnRightTwoWay, false, false, speed, 0)
	return a
}

// fakeRouter returns a fixed two-segment, 200m straight route regardless of
// the requested points, recording the last profile it was asked to plan for.
type fakeRouter struct {
	lastProfile profile.Profile
	err         error
}

func (f *fakeRouter) Plan(ctx context.Context, start, end geo.MapPoint, via []geo.MapPoint, p profile.Profile) (*route.Route, error) {
	f.lastProfile = p
	if f.err != nil {
		return nil, f.err
	}
	b := route.NewBuilder()
	arc := residentialArc(50)
	seg1 := route.Segment{
		DistanceMeters: 100,
		TimeSeconds:    10,
		Name:           "Main St",
		Attr:           arc,
		Path:           geo.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Ahead, Continue: true},
	}
	seg2 := route.Segment{
		DistanceMeters: 100,
		TimeSeconds:    10,
		Name:           "Main St",
		Attr:           arc,
		Path:           geo.Contour{{X: 100, Y: 0}, {X: 200, Y: 0}},
		Turn:           turn.Descriptor{Type: turn.Ahead},
	}
	_ = b.AppendSegment(seg1)
	_ = b.AppendSegment(seg2)
	return b.Finish(p), nil
}

func TestProfileForRequestResolvesPreset(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		wantCost func(p profile.Profile) bool
	}{
		{"default is car", "", func(p profile.Profile) bool { return p.SpeedKPH[roadtype.Motorway] == profile.NewCarProfile().SpeedKPH[roadtype.Motorway] }},
		{"walking", "walking", func(p profile.Profile) bool { return p.SpeedKPH[roadtype.Motorway] == profile.NewWalkProfile().SpeedKPH[roadtype.Motorway] }},
		{"cycling", "cycling", func(p profile.Profile) bool { return p.SpeedKPH[roadtype.Motorway] == profile.NewCycleProfile().SpeedKPH[roadtype.Motorway] }},
		{"hiking", "hiking", func(p profile.Profile) bool { return p.SpeedKPH[roadtype.Motorway] == profile.NewHikeProfile().SpeedKPH[roadtype.Motorway] }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := profileForRequest(RouteRequest{Profile: c.in})
			if !c.wantCost(got) {
				t.Errorf("profileForRequest(%q) resolved an unexpected preset", c.in)
			}
		})
	}
}

func TestProfileForRequestAppliesOverrides(t *testing.T) {
	p := profileForRequest(RouteRequest{Shortest: true, AvoidToll: true})
	if !p.Shortest {
		t.Error("expected Shortest to be set")
	}
	if p.TollPenalty != 0.999 {
		t.Errorf("TollPenalty = %v, want 0.999", p.TollPenalty)
	}
}

func TestAPIPlanRejectsTooFewLocations(t *testing.T) {
	api := &API{Router: &fakeRouter{}}
	_, err := api.plan(context.Background(), RouteRequest{Locations: []Location{{Lat: 1, Lng: 1}}})
	if err == nil {
		t.Error("expected an error with fewer than 2 locations")
	}
}

func TestAPIPlanRejectsMissingRouter(t *testing.T) {
	api := &API{}
	_, err := api.plan(context.Background(), RouteRequest{Locations: []Location{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}})
	if err == nil {
		t.Error("expected an error with no router configured")
	}
}

func TestAPIPlanMergesAndReturnsRoute(t *testing.T) {
	fr := &fakeRouter{}
	api := &API{Router: fr}

	rt, err := api.plan(context.Background(), RouteRequest{
		Locations: []Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 200}},
		Profile:   "cycling",
	})
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	// The two fixture segments share name and road type, and the first ends in
	// an Ahead, continuing turn, so they should merge into one.
	if len(rt.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1 (adjacent segments should merge)", len(rt.Segments))
	}
	if rt.DistanceMeters != 200 {
		t.Errorf("DistanceMeters = %v, want 200", rt.DistanceMeters)
	}
	if fr.lastProfile.SpeedKPH[roadtype.Motorway] != profile.NewCycleProfile().SpeedKPH[roadtype.Motorway] {
		t.Error("expected the cycling profile to have been passed to the router")
	}
}

func TestToSummaryProjectsRouteFields(t *testing.T) {
	fr := &fakeRouter{}
	rt, err := fr.Plan(context.Background(), geo.MapPoint{}, geo.MapPoint{}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	merged := rt.MergeAdjacent()

	s := toSummary(merged)
	if s.DistanceMeters != merged.DistanceMeters {
		t.Errorf("DistanceMeters mismatch: %v vs %v", s.DistanceMeters, merged.DistanceMeters)
	}
	if len(s.Path) != len(merged.Path) {
		t.Fatalf("len(Path) = %d, want %d", len(s.Path), len(merged.Path))
	}
	if len(s.Instructions) == 0 {
		t.Error("expected at least one instruction")
	}
}
