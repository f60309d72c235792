package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/internal/http/valhalla"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/turn"
)

// samplePolylineShape is the standard polyline-algorithm documentation example, decoding to
// three points: (38.5,-120.2), (40.7,-120.95), (43.252,-126.453).
const samplePolylineShape = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestExternalRouterPlan(t *testing.T) {
	var gotCosting string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req valhalla.RouteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotCosting = req.Costing

		resp := valhalla.RouteResponse{
			Trip: valhalla.Trip{
				Legs: []valhalla.Leg{
					{
						Shape: samplePolylineShape,
						Maneuvers: []valhalla.Maneuver{
							{
								Type:            5, // right
								Length:          1.0,
								Time:            60,
								StreetNames:     []string{"Main St"},
								BeginShapeIndex: 0,
								EndShapeIndex:   2,
							},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	client := valhalla.NewValhallaClient(srv.URL)
	r := NewExternalRouter(client, "auto")

	rt, err := r.Plan(context.Background(), geo.MapPoint{X: -120.2, Y: 38.5}, geo.MapPoint{X: -126.453, Y: 43.252}, nil, profile.NewCarProfile())
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	if gotCosting != "auto" {
		t.Errorf("request Costing = %q, want %q", gotCosting, "auto")
	}
	if len(rt.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(rt.Segments))
	}
	seg := rt.Segments[0]
	if seg.DistanceMeters != 1000 {
		t.Errorf("DistanceMeters = %v, want 1000", seg.DistanceMeters)
	}
	if seg.TimeSeconds != 60 {
		t.Errorf("TimeSeconds = %v, want 60", seg.TimeSeconds)
	}
	if seg.Name != "Main St" {
		t.Errorf("Name = %q, want %q", seg.Name, "Main St")
	}
	if seg.Turn.Type != turn.Right {
		t.Errorf("Turn.Type = %v, want %v", seg.Turn.Type, turn.Right)
	}
	if len(seg.Path) != 2 {
		t.Errorf("len(Path) = %d, want 2", len(seg.Path))
	}
}

func TestExternalRouterPlanPropagatesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := valhalla.NewValhallaClient(srv.URL)
	r := NewExternalRouter(client, "auto")

	_, err := r.Plan(context.Background(), geo.MapPoint{X: 0, Y: 0}, geo.MapPoint{X: 1, Y: 1}, nil, profile.NewCarProfile())
	if err == nil {
		t.Error("expected an error when the remote service fails")
	}
}

func TestManeuverToTurnType(t *testing.T) {
	cases := []struct {
		in   int
		want turn.Type
	}{
		{4, turn.BearRight},
		{10, turn.BearRight},
		{5, turn.Right},
		{6, turn.SharpRight},
		{7, turn.Around},
		{8, turn.SharpLeft},
		{9, turn.Left},
		{3, turn.BearLeft},
		{0, turn.Ahead},
		{99, turn.Ahead},
	}
	for _, c := range cases {
		if got := maneuverToTurnType(c.in); got != c.want {
			t.Errorf("maneuverToTurnType(%d) = %v, want %v", c.in, got, c.want)
		}
	}
}
