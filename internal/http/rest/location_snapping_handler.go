package rest

import (
	"net/http"

	"github.com/bwise1/waze_kibris/internal/geo"
	"github.com/bwise1/waze_kibris/navcore/route"
	"github.com/bwise1/waze_kibris/util"
	"github.com/bwise1/waze_kibris/util/tracing"
	"github.com/bwise1/waze_kibris/util/values"
	"github.com/go-chi/chi/v5"
)

// LocationSnappingRoutes defines routes for location snapping functionality.
func (api *API) LocationSnappingRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/snap", Handler(api.SnapLocationHandler))
	mux.Method(http.MethodPost, "/snap/report", Handler(api.SnapReportLocationHandler))

	return mux
}

// SnapLocationRequest snaps a single point onto a route: either the caller's
// own live navigation route (UserID, looked up from the websocket
// connection's navigator) or a route planned fresh from Locations.
type SnapLocationRequest struct {
	Point     Location   `json:"point" validate:"required"`
	UserID    string     `json:"user_id,omitempty"`
	Locations []Location `json:"locations,omitempty"`
	Profile   string     `json:"profile,omitempty"`
}

// SnapLocationResponse is the projection of a point onto a route.
type SnapLocationResponse struct {
	Snapped          LatLng  `json:"snapped"`
	DistanceMeters   float64 `json:"distanceMeters"`   // perpendicular distance from the query point
	AlongRouteMeters float64 `json:"alongRouteMeters"` // cumulative distance along the route to the snapped point
	SegmentIndex     int     `json:"segmentIndex"`
}

type errNoRouteToSnapTo struct{}

func (errNoRouteToSnapTo) Error() string {
	return "no route available to snap to: supply locations or an active user_id"
}

type errPointNotNearRoute struct{}

func (errPointNotNearRoute) Error() string { return "point is not near the route" }

// routeToSnapAgainst resolves a SnapLocationRequest into the route.Route it
// should be projected onto, either the user's live navigation route or a
// freshly planned one.
func (api *API) routeToSnapAgainst(r *http.Request, req SnapLocationRequest) (*route.Route, error) {
	if req.UserID != "" && api.Deps != nil && api.Deps.WebSocket != nil {
		if active := api.Deps.WebSocket.RouteForUser(req.UserID); active != nil {
			return active, nil
		}
	}
	if len(req.Locations) >= 2 {
		return api.plan(r.Context(), RouteRequest{Locations: req.Locations, Profile: req.Profile})
	}
	return nil, errNoRouteToSnapTo{}
}

func snapPoint(rt *route.Route, p Location) (*SnapLocationResponse, error) {
	idx := route.NewIndex(rt)
	info, found := idx.NearestSegment(geo.MapPoint{X: p.Lng, Y: p.Lat}, -1, 0)
	if !found {
		return nil, errPointNotNearRoute{}
	}
	return &SnapLocationResponse{
		Snapped:          LatLng{Lat: info.Point.Y, Lng: info.Point.X},
		DistanceMeters:   info.DistanceMeters,
		AlongRouteMeters: info.DistanceAlongRouteMeters,
		SegmentIndex:     info.SegmentIndex,
	}, nil
}

// SnapLocationHandler snaps a single location onto a route.
func (api *API) SnapLocationHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req SnapLocationRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	rt, err := api.routeToSnapAgainst(r, req)
	if err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	snapped, err := snapPoint(rt, req.Point)
	if err != nil {
		return respondWithError(err, err.Error(), values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "location snapped successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       snapped,
	}
}

// ReportSnapLocationRequest snaps a hazard report's reported position onto
// the road network before it is stored, so reports line up with the route
// graph rather than wherever a noisy GPS fix placed them.
type ReportSnapLocationRequest struct {
	Location   Location   `json:"location" validate:"required"`
	ReportType string     `json:"report_type" validate:"required"`
	UserID     string     `json:"user_id,omitempty"`
	Locations  []Location `json:"locations,omitempty"`
}

// SnapReportLocationHandler handles report-specific location snapping.
func (api *API) SnapReportLocationHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req ReportSnapLocationRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	rt, err := api.routeToSnapAgainst(r, SnapLocationRequest{UserID: req.UserID, Locations: req.Locations})
	if err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	snapped, err := snapPoint(rt, req.Location)
	if err != nil {
		return respondWithError(err, err.Error(), values.Error, &tc)
	}

	response := struct {
		*SnapLocationResponse
		ReportType string `json:"report_type"`
	}{snapped, req.ReportType}

	return &ServerResponse{
		Message:    "report location snapped successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       response,
	}
}
