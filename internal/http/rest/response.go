package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bwise1/waze_kibris/util"
	"github.com/bwise1/waze_kibris/util/tracing"
	"github.com/bwise1/waze_kibris/util/values"
)

// ServerResponse is the envelope every Handler returns; Handler.ServeHTTP
// marshals it to JSON and writes it with StatusCode.
type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

// respondWithError builds the ServerResponse a handler returns on failure,
// logging the underlying error (if any) tagged with the request's tracing
// context so it can be correlated with the client-visible message.
func respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		if tc != nil {
			log.Printf("%s: %v (%s)", message, err, tc.String())
		} else {
			log.Printf("%s: %v", message, err)
		}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// writeErrorResponse writes a ServerResponse built from an error directly to
// the ResponseWriter, for the rare failure path before a tracing.Context is
// available (e.g. tracing middleware itself, or a JSON marshal failure).
func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	resp := ServerResponse{Message: message, Status: status, StatusCode: util.StatusCode(status)}
	respByte, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

// writeJSONResponse writes a pre-marshaled JSON body with the given status
// code and content type.
func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
