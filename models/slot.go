package models

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus is the tri-state outcome label of a fill-in slot.
type SlotStatus string

const (
	SlotStatusPending   SlotStatus = "Pending"
	SlotStatusConfirmed SlotStatus = "Confirmed"
	SlotStatusDeclined  SlotStatus = "Declined"
)

// ParseSlotStatus maps a raw label to a SlotStatus by exact match.
// Anything else falls back to Pending.
func ParseSlotStatus(raw string) SlotStatus {
	switch SlotStatus(raw) {
	case SlotStatusConfirmed:
		return SlotStatusConfirmed
	case SlotStatusDeclined:
		return SlotStatusDeclined
	default:
		return SlotStatusPending
	}
}

// SlotCreator is one side of a scheduled pairing. Creators are referenced by
// display name, not by account id, so two accounts sharing a name are
// indistinguishable here.
type SlotCreator struct {
	Name            string `json:"name"`
	NetworkOrAgency string `json:"network_or_agency"`
	Category        string `json:"category"`
	DiamondAverage  string `json:"diamond_average"`
	Confirmed       bool   `json:"confirmed"`
}

// Slot is one scheduled pairing inside a fill-in bracket.
//
// Status is assigned directly by the editing user and is independent of the
// two per-creator Confirmed flags: both flags being true does not promote
// Pending to Confirmed, and any status may be set from any other status.
type Slot struct {
	ID            string      `json:"id"`
	StartDateTime time.Time   `json:"start_date_time"`
	Creator1      SlotCreator `json:"creator1"`
	Creator2      SlotCreator `json:"creator2"`
	Status        SlotStatus  `json:"status"`
	Notes         string      `json:"notes"`
	Link          string      `json:"link"`
}

// NewSlot returns an empty pending slot scheduled at start.
func NewSlot(start time.Time) Slot {
	return Slot{
		ID:            uuid.NewString(),
		StartDateTime: start,
		Status:        SlotStatusPending,
	}
}

// Involves reports whether name exactly equals either creator's display name.
// The comparison is case-sensitive and does no trimming.
func (s Slot) Involves(name string) bool {
	return s.Creator1.Name == name || s.Creator2.Name == name
}
