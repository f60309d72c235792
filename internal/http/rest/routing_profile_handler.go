package rest

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/bwise1/waze_kibris/internal/model"
	"github.com/bwise1/waze_kibris/navcore/xmlio"
	"github.com/bwise1/waze_kibris/util"
	"github.com/bwise1/waze_kibris/util/tracing"
	"github.com/bwise1/waze_kibris/util/values"
	"github.com/go-chi/chi/v5"
)

// RoutingProfileRoutes defines routes for saving and recalling named
// routing presets (a vehicle profile plus the caller's shortest-path/toll
// overrides).
func (api *API) RoutingProfileRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Route("/", func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.SaveRoutingProfile))
		r.Method(http.MethodGet, "/", Handler(api.GetAllRoutingProfiles))
		r.Method(http.MethodGet, "/{name}", Handler(api.GetRoutingProfile))
		r.Method(http.MethodDelete, "/{name}", Handler(api.DeleteRoutingProfile))
	})

	return mux
}

// SaveRoutingProfileRequest names and persists the profile a RouteRequest
// would otherwise resolve fresh on every call.
type SaveRoutingProfileRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=50"`
	Profile   string `json:"profile,omitempty"`
	Shortest  bool   `json:"shortest,omitempty"`
	AvoidToll bool   `json:"avoid_toll,omitempty"`
}

func (api *API) SaveRoutingProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req SaveRoutingProfileRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		log.Println("unable to get user ID from context", err)
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	p := profileForRequest(RouteRequest{Profile: req.Profile, Shortest: req.Shortest, AvoidToll: req.AvoidToll})

	var buf bytes.Buffer
	if err := xmlio.WriteProfile(&buf, p); err != nil {
		return respondWithError(err, "failed to serialize routing profile", values.SystemErr, &tc)
	}

	record := model.RoutingProfile{UserID: userID, Name: req.Name, ProfileXML: buf.String()}
	if err := api.CreateRoutingProfileRepo(context.TODO(), record); err != nil {
		return respondWithError(err, "failed to save routing profile", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "routing profile saved successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       model.RoutingProfileResponse{Name: req.Name},
	}
}

func (api *API) GetAllRoutingProfiles(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		log.Println("unable to get user ID from context", err)
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	profiles, err := api.ListRoutingProfilesRepo(r.Context(), userID)
	if err != nil {
		log.Println("failed to list routing profiles", err)
		return respondWithError(err, "failed to list routing profiles", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "routing profiles retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       profiles,
	}
}

func (api *API) GetRoutingProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		log.Println("unable to get user ID from context", err)
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	name := chi.URLParam(r, "name")
	record, err := api.GetRoutingProfileRepo(r.Context(), userID, name)
	if err != nil {
		return respondWithError(err, "failed to get routing profile", values.Error, &tc)
	}
	if record.Name == "" {
		return respondWithError(nil, "routing profile not found", values.BadRequestBody, &tc)
	}

	p, err := xmlio.ReadProfile(bytes.NewReader([]byte(record.ProfileXML)))
	if err != nil {
		return respondWithError(err, "failed to decode routing profile", values.SystemErr, &tc)
	}

	return &ServerResponse{
		Message:    "routing profile retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]interface{}{
			"name":       record.Name,
			"shortest":   p.Shortest,
			"tollPenalty": p.TollPenalty,
		},
	}
}

func (api *API) DeleteRoutingProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		log.Println("unable to get user ID from context", err)
		return respondWithError(err, "Not authorized", values.NotAuthorised, &tc)
	}

	name := chi.URLParam(r, "name")
	if err := api.DeleteRoutingProfileRepo(r.Context(), userID, name); err != nil {
		return respondWithError(err, "failed to delete routing profile", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "routing profile deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}
