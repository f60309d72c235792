package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
)

func TestRouteToSnapAgainstRequiresLocationsOrUser(t *testing.T) {
	api := &API{Router: &fakeRouter{}}
	req := httptest.NewRequest(http.MethodPost, "/location/snap", nil)

	_, err := api.routeToSnapAgainst(req, SnapLocationRequest{})
	if err == nil {
		t.Error("expected an error when neither locations nor user_id are supplied")
	}
}

func TestRouteToSnapAgainstPlansFromLocations(t *testing.T) {
	api := &API{Router: &fakeRouter{}}
	req := httptest.NewRequest(http.MethodPost, "/location/snap", nil)

	rt, err := api.routeToSnapAgainst(req, SnapLocationRequest{
		Locations: []Location{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 200}},
	})
	if err != nil {
		t.Fatalf("routeToSnapAgainst error: %v", err)
	}
	if rt.DistanceMeters != 200 {
		t.Errorf("DistanceMeters = %v, want 200", rt.DistanceMeters)
	}
}

func TestSnapPointFindsNearestSegment(t *testing.T) {
	fr := &fakeRouter{}
	rt, err := fr.Plan(context.Background(), geo.MapPoint{}, geo.MapPoint{}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}

	resp, err := snapPoint(rt, Location{Lat: 0.0001, Lng: 50})
	if err != nil {
		t.Fatalf("snapPoint error: %v", err)
	}
	if resp.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %d, want 0", resp.SegmentIndex)
	}
	if resp.AlongRouteMeters < 0 || resp.AlongRouteMeters > 200 {
		t.Errorf("AlongRouteMeters = %v, want within [0,200]", resp.AlongRouteMeters)
	}
}

func TestSnapPointReportsDistanceForFarPoint(t *testing.T) {
	fr := &fakeRouter{}
	rt, err := fr.Plan(context.Background(), geo.MapPoint{}, geo.MapPoint{}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}

	resp, err := snapPoint(rt, Location{Lat: 5000, Lng: 50})
	if err != nil {
		t.Fatalf("snapPoint error: %v", err)
	}
	if resp.DistanceMeters <= 1000 {
		t.Errorf("DistanceMeters = %v, want a large distance for a far-off point", resp.DistanceMeters)
	}
}

func TestSnapPointRejectsEmptyRoute(t *testing.T) {
	_, err := snapPoint(&route.Route{}, Location{Lat: 0, Lng: 0})
	if err == nil {
		t.Error("expected an error when the route has no segments")
	}
}
