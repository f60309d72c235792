package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/profile"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/navcore/xmlio"
	"github.com/bwise1/waze_kibris/util"
	"github.com/bwise1/waze_kibris/util/tracing"
	"github.com/bwise1/waze_kibris/util/values"
	"github.com/go-chi/chi/v5"
)

func (api *API) RoutingRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		// r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.GetRouteHandler))
		r.Method(http.MethodPost, "/xml", Handler(api.GetRouteXMLHandler))
		r.Method(http.MethodPost, "/gpx", Handler(api.GetRouteGPXHandler))
	})

	return mux
}

// Location represents a coordinate pair for routing.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteRequest is the payload for every route-calculation endpoint.
type RouteRequest struct {
	Locations []Location `json:"locations"`
	Profile   string     `json:"profile,omitempty"` // "driving", "walking", "cycling", "hiking"
	Shortest  bool       `json:"shortest,omitempty"`
	AvoidToll bool       `json:"avoid_toll,omitempty"`
	// UserID, if set, also installs the planned route onto that user's
	// live websocket navigator so subsequent location_update fixes track
	// turn-by-turn progress against it.
	UserID string `json:"user_id,omitempty"`
}

// RouteSummary is the JSON-facing view of a planned route: enough to draw it
// and read turn-by-turn instructions, without navcore's internal types.
type RouteSummary struct {
	DistanceMeters float64  `json:"distanceMeters"`
	TimeSeconds    float64  `json:"timeSeconds"`
	Instructions   []string `json:"instructions"`
	Path           []LatLng `json:"path"`
}

// LatLng is a JSON-friendly coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type errBadLocations struct{}

func (errBadLocations) Error() string { return "at least 2 locations are required" }

type errNoRouter struct{}

func (errNoRouter) Error() string { return "no router configured for this deployment" }

// profileForRequest resolves a request's named profile preset and
// request-level overrides into a navcore profile.Profile.
func profileForRequest(req RouteRequest) profile.Profile {
	var p profile.Profile
	switch req.Profile {
	case "walking":
		p = profile.NewWalkProfile()
	case "cycling":
		p = profile.NewCycleProfile()
	case "hiking":
		p = profile.NewHikeProfile()
	default:
		p = profile.NewCarProfile()
	}
	p.Shortest = req.Shortest
	if req.AvoidToll {
		p.TollPenalty = 0.999
	}
	return p
}

// plan validates a route request and plans it with the API's configured
// router, returning the merged, instruction-ready route.
func (api *API) plan(ctx context.Context, req RouteRequest) (*route.Route, error) {
	if len(req.Locations) < 2 {
		return nil, errBadLocations{}
	}
	if api.Router == nil {
		return nil, errNoRouter{}
	}

	start := geo.MapPoint{X: req.Locations[0].Lng, Y: req.Locations[0].Lat}
	end := geo.MapPoint{X: req.Locations[len(req.Locations)-1].Lng, Y: req.Locations[len(req.Locations)-1].Lat}

	var via []geo.MapPoint
	for _, loc := range req.Locations[1 : len(req.Locations)-1] {
		via = append(via, geo.MapPoint{X: loc.Lng, Y: loc.Lat})
	}

	r, err := api.Router.Plan(ctx, start, end, via, profileForRequest(req))
	if err != nil {
		return nil, err
	}
	merged := r.MergeAdjacent()

	if req.UserID != "" && api.Deps != nil && api.Deps.WebSocket != nil {
		api.Deps.WebSocket.SetRouteForUser(req.UserID, merged)
	}

	return merged, nil
}

func toSummary(r *route.Route) *RouteSummary {
	s := &RouteSummary{
		DistanceMeters: r.DistanceMeters,
		TimeSeconds:    r.TimeSeconds,
		Instructions:   r.Instructions("en"),
	}
	for _, pt := range r.Path {
		s.Path = append(s.Path, LatLng{Lat: pt.Y, Lng: pt.X})
	}
	return s
}

// GetRouteHandler plans a route and returns it as a JSON summary.
func (api *API) GetRouteHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return respondWithError(err, "invalid request payload", values.BadRequestBody, &tc)
	}

	planned, err := api.plan(r.Context(), req)
	if err != nil {
		return respondWithError(err, "failed to calculate route", values.SystemErr, &tc)
	}

	return &ServerResponse{
		Message:    "route calculated",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       toSummary(planned),
	}
}

// GetRouteXMLHandler plans a route and writes it as the route XML format.
func (api *API) GetRouteXMLHandler(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return respondWithError(err, "invalid request payload", values.BadRequestBody, &tc)
	}

	planned, err := api.plan(r.Context(), req)
	if err != nil {
		return respondWithError(err, "failed to calculate route", values.SystemErr, &tc)
	}

	var buf bytes.Buffer
	identity := func(p geo.MapPoint) geo.Point { return geo.Point{Lat: p.Y, Lon: p.X} }
	if err := xmlio.WriteRoute(&buf, planned, identity); err != nil {
		return respondWithError(err, "failed to serialize route", values.SystemErr, &tc)
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// GetRouteGPXHandler plans a route and writes it as GPX, using an identity
// projection since this deployment's MapPoint values are already lat/lng
// degrees (no map projection is in play without a local map database).
func (api *API) GetRouteGPXHandler(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return respondWithError(err, "invalid request payload", values.BadRequestBody, &tc)
	}

	planned, err := api.plan(r.Context(), req)
	if err != nil {
		return respondWithError(err, "failed to calculate route", values.SystemErr, &tc)
	}

	var buf bytes.Buffer
	identity := func(p geo.MapPoint) geo.Point { return geo.Point{Lat: p.Y, Lon: p.X} }
	if err := xmlio.WriteGPX(&buf, planned, identity); err != nil {
		return respondWithError(err, "failed to serialize gpx", values.SystemErr, &tc)
	}

	w.Header().Set("Content-Type", "application/gpx+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}
