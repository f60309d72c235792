package model

import (
	"time"

	"github.com/google/uuid"
)

// RoutingProfile is a user's saved named routing preset: the base vehicle
// preset plus any overrides (shortest-path mode, toll avoidance), persisted
// as the navcore profile XML format so it round-trips through
// navcore/xmlio without a bespoke schema per tunable.
type RoutingProfile struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	ProfileXML string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutingProfileResponse is the JSON-facing view of a saved preset.
type RoutingProfileResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
