package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleMapsClient handles communication with Google Maps APIs
type GoogleMapsClient struct {
	APIKey string // IMPORTANT: Handle your API Key securely! Do not hardcode.
	Client *http.Client
}

// NewGoogleMapsClient creates a new client instance
// apiKey should be loaded securely (e.g., from environment variable)
func NewGoogleMapsClient(apiKey string) *GoogleMapsClient {
	if apiKey == "" {
		log.Println("Warning: Google Maps API Key is empty.")
	}
	return &GoogleMapsClient{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Place Details Structures ---

// PlaceDetailsResponse represents the top-level response for a Place Details request
type PlaceDetailsResponse struct {
	HTMLAttributions []string           `json:"html_attributions"`
	Result           PlaceDetailsResult `json:"result"`
	Status           string             `json:"status"`                  // e.g., "OK", "ZERO_RESULTS", "INVALID_REQUEST", "OVER_QUERY_LIMIT", "REQUEST_DENIED", "UNKNOWN_ERROR"
	InfoMessages     []string           `json:"info_messages,omitempty"` // Additional info messages
}

// PlaceDetailsResult contains the detailed information about the place
type PlaceDetailsResult struct {
	AddressComponents  []AddressComponent `json:"address_components"`
	AdrAddress         string             `json:"adr_address"`     // Address in adr microformat
	BusinessStatus     string             `json:"business_status"` // e.g., "OPERATIONAL", "CLOSED_TEMPORARILY", "CLOSED_PERMANENTLY"
	FormattedAddress   string             `json:"formatted_address"`
	FormattedPhone     string             `json:"formatted_phone_number"`
	Geometry           Geometry           `json:"geometry"`
	Icon               string             `json:"icon"` // URL to icon
	IconMaskBaseURI    string             `json:"icon_mask_base_uri"`
	IconBgColor        string             `json:"icon_background_color"`
	InternationalPhone string             `json:"international_phone_number"`
	Name               string             `json:"name"`
	OpeningHours       *OpeningHours      `json:"opening_hours,omitempty"` // Pointer as it might be missing
	Photos             []Photo            `json:"photos,omitempty"`        // Array of photos
	PlaceID            string             `json:"place_id"`
	PlusCode           *PlusCode          `json:"plus_code,omitempty"`
	Rating             float64            `json:"rating"`            // Average rating
	Reference          string             `json:"reference"`         // Deprecated
	Reviews            []Review           `json:"reviews,omitempty"` // Array of reviews
	Types              []string           `json:"types"`             // e.g., ["restaurant", "food", "point_of_interest", "establishment"]
	URL                string             `json:"url"`               // Google Maps URL
	UserRatingsTotal   int                `json:"user_ratings_total"`
	UTCOffset          int                `json:"utc_offset_minutes"` // Offset from UTC in minutes
	Vicinity           string             `json:"vicinity"`           // Simplified address
	Website            string             `json:"website"`
	// Add other fields as needed based on the 'fields' parameter used
}

// AddressComponent represents a component of an address
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geometry contains location information
type Geometry struct {
	Location LatLng `json:"location"`
	Viewport Bounds `json:"viewport"`
}

// LatLng represents latitude and longitude
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a viewport bounding box
type Bounds struct {
	NorthEast LatLng `json:"northeast"`
	SouthWest LatLng `json:"southwest"`
}

// OpeningHours contains opening hours information
type OpeningHours struct {
	OpenNow     *bool           `json:"open_now,omitempty"` // Pointer as it might be missing
	Periods     []OpeningPeriod `json:"periods"`
	WeekdayText []string        `json:"weekday_text"`           // Formatted weekly hours
	SpecialDays []SpecialDay    `json:"special_days,omitempty"` // Upcoming special hours (e.g. holidays)
}

// OpeningPeriod represents a period when the place is open
type OpeningPeriod struct {
	Open  TimeOfWeek  `json:"open"`
	Close *TimeOfWeek `json:"close,omitempty"` // Close might be missing for always open
}

// TimeOfWeek represents a time point in a week
type TimeOfWeek struct {
	Day       int    `json:"day"`                 // 0=Sunday, 1=Monday, ..., 6=Saturday
	Time      string `json:"time"`                // HHMM format (e.g., "1700")
	Date      string `json:"date,omitempty"`      // YYYY-MM-DD format (used in special_days)
	Truncated bool   `json:"truncated,omitempty"` // If true, the closing time extends to the next day
}

// SpecialDay represents opening hours for a specific date (e.g., holiday)
type SpecialDay struct {
	Date        string `json:"date"`              // YYYY-MM-DD
	Exceptional bool   `json:"exceptional_hours"` // True if differs from regular hours
	// Include fields similar to OpeningPeriod if needed, check API docs
}

// Photo contains information about a place photo
type Photo struct {
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"` // Use this reference to fetch the actual photo
}

// Review contains a user review
type Review struct {
	AuthorName       string `json:"author_name"`
	AuthorURL        string `json:"author_url"` // URL to author's Google profile
	Language         string `json:"language"`
	ProfilePhotoURL  string `json:"profile_photo_url"`
	Rating           int    `json:"rating"`                    // 1 to 5
	RelativeTimeDesc string `json:"relative_time_description"` // e.g., "a month ago"
	Text             string `json:"text"`
	Time             int64  `json:"time"` // Unix timestamp
	Translated       bool   `json:"translated"`
}

// PlusCode is an encoded location reference
type PlusCode struct {
	GlobalCode   string `json:"global_code"`
	CompoundCode string `json:"compound_code"`
}

// --- Client Methods ---

// GetPlaceDetails fetches detailed information about a place using its Place ID.
// placeID: The unique identifier for the place.
// fields: A list of fields to request (e.g., "name", "rating", "opening_hours", "photo", "review").
//
//	Requesting specific fields is REQUIRED and helps manage costs.
//	See https://developers.google.com/maps/documentation/places/web-service/details#fields
func (gc *GoogleMapsClient) GetPlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetailsResult, error) {
	if gc.APIKey == "" {
		return nil, fmt.Errorf("google maps API key is not set")
	}
	if placeID == "" {
		return nil, fmt.Errorf("placeID cannot be empty")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields parameter cannot be empty for Place Details request")
	}

	baseURL := "https://maps.googleapis.com/maps/api/place/details/json"
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", gc.APIKey)
	params.Set("fields", strings.Join(fields, ","))
	// Optional: Add language parameter: params.Set("language", "en")

	fullURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Place Details request: %w", err)
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		log.Printf("Error making Place Details request: %v\n", err)
		return nil, fmt.Errorf("failed to execute Place Details request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading Place Details response body: %v\n", err)
		return nil, fmt.Errorf("failed to read Place Details response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Place Details request failed with status %d: %s\n", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("google maps error: status code %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var detailsResponse PlaceDetailsResponse
	err = json.Unmarshal(bodyBytes, &detailsResponse)
	if err != nil {
		log.Printf("Error decoding Place Details response: %v\nBody: %s\n", err, string(bodyBytes))
		return nil, fmt.Errorf("failed to decode Place Details response: %w", err)
	}

	// Check the status field in the response JSON
	if detailsResponse.Status != "OK" {
		log.Printf("Google Maps API returned status: %s\n", detailsResponse.Status)
		return nil, fmt.Errorf("google maps API error: %s", detailsResponse.Status)
	}

	return &detailsResponse.Result, nil
}

// --- Place Autocomplete Structures ---

// AutocompleteResponse represents the top-level response for a Place Autocomplete request
type AutocompleteResponse struct {
	Predictions []AutocompletePrediction `json:"predictions"`
	Status      string                   `json:"status"`
}

// AutocompletePrediction is a single suggested place
type AutocompletePrediction struct {
	Description          string                 `json:"description"`
	PlaceID               string                 `json:"place_id"`
	StructuredFormatting  StructuredFormatting   `json:"structured_formatting"`
	Types                 []string               `json:"types"`
	MatchedSubstrings     []MatchedSubstring     `json:"matched_substrings,omitempty"`
}

// StructuredFormatting splits a prediction's description into a main and secondary part
type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// MatchedSubstring marks where the query text matched within the description
type MatchedSubstring struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

// PlaceAutocomplete returns place suggestions matching text, optionally biased
// towards origin and restricted to radius meters around it.
func (gc *GoogleMapsClient) PlaceAutocomplete(ctx context.Context, text string, origin *LatLng, radius int) ([]AutocompletePrediction, error) {
	if gc.APIKey == "" {
		return nil, fmt.Errorf("google maps API key is not set")
	}
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	baseURL := "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	params := url.Values{}
	params.Set("input", text)
	params.Set("key", gc.APIKey)
	if origin != nil {
		params.Set("location", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
		if radius > 0 {
			params.Set("radius", fmt.Sprintf("%d", radius))
		}
	}

	fullURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Place Autocomplete request: %w", err)
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		log.Printf("Error making Place Autocomplete request: %v\n", err)
		return nil, fmt.Errorf("failed to execute Place Autocomplete request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading Place Autocomplete response body: %v\n", err)
		return nil, fmt.Errorf("failed to read Place Autocomplete response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Place Autocomplete request failed with status %d: %s\n", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("google maps error: status code %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var autocompleteResponse AutocompleteResponse
	err = json.Unmarshal(bodyBytes, &autocompleteResponse)
	if err != nil {
		log.Printf("Error decoding Place Autocomplete response: %v\nBody: %s\n", err, string(bodyBytes))
		return nil, fmt.Errorf("failed to decode Place Autocomplete response: %w", err)
	}

	if autocompleteResponse.Status != "OK" && autocompleteResponse.Status != "ZERO_RESULTS" {
		log.Printf("Google Maps API returned status: %s\n", autocompleteResponse.Status)
		return nil, fmt.Errorf("google maps API error: %s", autocompleteResponse.Status)
	}

	return autocompleteResponse.Predictions, nil
}

// --- Directions Structures ---

// DirectionsResponse represents the top-level response for a Directions request
type DirectionsResponse struct {
	Routes           []DirectionsRoute `json:"routes"`
	Status           string            `json:"status"`
	GeocodedWaypoints []GeocodedWaypoint `json:"geocoded_waypoints,omitempty"`
}

// GeocodedWaypoint reports how an origin/destination/waypoint string was resolved
type GeocodedWaypoint struct {
	GeocoderStatus string   `json:"geocoder_status"`
	PlaceID        string   `json:"place_id"`
	Types          []string `json:"types"`
}

// DirectionsRoute is a single candidate route between origin and destination
type DirectionsRoute struct {
	Summary          string            `json:"summary"`
	Legs             []DirectionsLeg   `json:"legs"`
	OverviewPolyline Polyline          `json:"overview_polyline"`
	Bounds           Bounds            `json:"bounds"`
	WarningsList     []string          `json:"warnings,omitempty"`
}

// Polyline is an encoded path, in Google's polyline format
type Polyline struct {
	Points string `json:"points"`
}

// DirectionsLeg is one origin-to-destination (or waypoint-to-waypoint) leg of a route
type DirectionsLeg struct {
	Steps         []DirectionsStep `json:"steps"`
	Distance      TextValue        `json:"distance"`
	Duration      TextValue        `json:"duration"`
	StartAddress  string           `json:"start_address"`
	EndAddress    string           `json:"end_address"`
	StartLocation LatLng           `json:"start_location"`
	EndLocation   LatLng           `json:"end_location"`
}

// DirectionsStep is a single turn-by-turn instruction within a leg
type DirectionsStep struct {
	HTMLInstructions string    `json:"html_instructions"`
	Distance         TextValue `json:"distance"`
	Duration         TextValue `json:"duration"`
	StartLocation    LatLng    `json:"start_location"`
	EndLocation      LatLng    `json:"end_location"`
	Polyline         Polyline  `json:"polyline"`
	TravelMode       string    `json:"travel_mode"`
	Maneuver         string    `json:"maneuver,omitempty"`
}

// TextValue pairs a human-readable string with its underlying numeric value
type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"` // meters for distance, seconds for duration
}

// Directions fetches a route between origin and destination, through the given
// waypoints, for the given travel mode ("driving", "walking", "bicycling",
// "transit"). When alternatives is true Google may return more than one route.
func (gc *GoogleMapsClient) Directions(ctx context.Context, origin, destination string, waypoints []string, mode string, alternatives bool) (*DirectionsResponse, error) {
	if gc.APIKey == "" {
		return nil, fmt.Errorf("google maps API key is not set")
	}
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}
	if mode == "" {
		mode = "driving"
	}

	baseURL := "https://maps.googleapis.com/maps/api/directions/json"
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", mode)
	params.Set("key", gc.APIKey)
	if len(waypoints) > 0 {
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}
	if alternatives {
		params.Set("alternatives", "true")
	}

	fullURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Directions request: %w", err)
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		log.Printf("Error making Directions request: %v\n", err)
		return nil, fmt.Errorf("failed to execute Directions request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading Directions response body: %v\n", err)
		return nil, fmt.Errorf("failed to read Directions response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Directions request failed with status %d: %s\n", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("google maps error: status code %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var dirResponse DirectionsResponse
	err = json.Unmarshal(bodyBytes, &dirResponse)
	if err != nil {
		log.Printf("Error decoding Directions response: %v\nBody: %s\n", err, string(bodyBytes))
		return nil, fmt.Errorf("failed to decode Directions response: %w", err)
	}

	if dirResponse.Status != "OK" {
		log.Printf("Google Maps API returned status: %s\n", dirResponse.Status)
		return nil, fmt.Errorf("google maps API error: %s", dirResponse.Status)
	}

	return &dirResponse, nil
}
