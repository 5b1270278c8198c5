package models

import "time"

// FillInBracket is a named, ordered collection of fill-in slots targeting one
// streaming platform. Slots are owned exclusively by their bracket: they have
// no identity outside it and die with it.
type FillInBracket struct {
	ID              int       `json:"id"`
	BracketName     string    `json:"bracket_name"`
	PlatformName    string    `json:"platform_name"`
	Slots           []Slot    `json:"slots"`
	CreatedByUserID *int      `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	// IsPublic is stored as-is; any visibility filtering happens in the
	// presentation layer, not here.
	IsPublic bool `json:"is_public"`
}
