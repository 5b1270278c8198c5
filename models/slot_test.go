package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/streampair/bracket-system/models"
)

func TestParseSlotStatus(t *testing.T) {
	assert.Equal(t, models.SlotStatusPending, models.ParseSlotStatus("Pending"))
	assert.Equal(t, models.SlotStatusConfirmed, models.ParseSlotStatus("Confirmed"))
	assert.Equal(t, models.SlotStatusDeclined, models.ParseSlotStatus("Declined"))

	// Anything that is not an exact match falls back to Pending.
	assert.Equal(t, models.SlotStatusPending, models.ParseSlotStatus(""))
	assert.Equal(t, models.SlotStatusPending, models.ParseSlotStatus("confirmed"))
	assert.Equal(t, models.SlotStatusPending, models.ParseSlotStatus("CONFIRMED"))
	assert.Equal(t, models.SlotStatusPending, models.ParseSlotStatus("Cancelled"))
}

func TestNewSlot(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	slot := models.NewSlot(start)

	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, start, slot.StartDateTime)
	assert.Equal(t, models.SlotStatusPending, slot.Status)
	assert.False(t, slot.Creator1.Confirmed)
	assert.False(t, slot.Creator2.Confirmed)

	other := models.NewSlot(start)
	assert.NotEqual(t, slot.ID, other.ID)
}

// Status is independent of the two per-creator confirmation flags: setting
// Confirmed directly without touching either flag is valid, and any status
// may follow any other.
func TestSlot_StatusDecoupledFromConfirmation(t *testing.T) {
	slot := models.NewSlot(time.Now())

	slot.Status = models.SlotStatusConfirmed
	assert.Equal(t, models.SlotStatusConfirmed, slot.Status)
	assert.False(t, slot.Creator1.Confirmed)
	assert.False(t, slot.Creator2.Confirmed)

	slot.Creator1.Confirmed = true
	slot.Creator2.Confirmed = true
	slot.Status = models.SlotStatusPending
	assert.Equal(t, models.SlotStatusPending, slot.Status)

	slot.Status = models.SlotStatusDeclined
	slot.Status = models.SlotStatusConfirmed
	assert.Equal(t, models.SlotStatusConfirmed, slot.Status)
}

func TestSlot_Involves(t *testing.T) {
	slot := models.NewSlot(time.Now())
	slot.Creator1.Name = "Jordan"
	slot.Creator2.Name = "Casey"

	assert.True(t, slot.Involves("Jordan"))
	assert.True(t, slot.Involves("Casey"))

	// Case-sensitive, no trimming.
	assert.False(t, slot.Involves("jordan"))
	assert.False(t, slot.Involves(" Jordan"))
	assert.False(t, slot.Involves("Jordan "))
	assert.False(t, slot.Involves("Alex"))
}
