package models

import "time"

// AdHocParticipant is one entry in an ad hoc bracket's participant list,
// keyed by an arbitrary per-participant availability window.
type AdHocParticipant struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	StopTime  string `json:"stop_time"`
}

// AdHocBracket is the older free-form bracket aggregate. It is structurally
// similar to FillInBracket but is a distinct aggregate with its own
// collection and repository; the two are never kept consistent with each
// other.
type AdHocBracket struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	BracketName    string             `json:"bracket_name"`
	BracketCreator string             `json:"bracket_creator"`
	Platform       string             `json:"platform"`
	StartTime      string             `json:"start_time"`
	StopTime       string             `json:"stop_time"`
	Timezone       string             `json:"timezone"`
	BracketStyle   string             `json:"bracket_style"`
	MaxUsers       int                `json:"max_users"`
	Participants   []AdHocParticipant `json:"participants"`
	CreatedAt      time.Time          `json:"created_at"`
}
