package brackets_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/streampair/bracket-system/brackets"
)

func TestProjectZones_StandardTime(t *testing.T) {
	// Mid-January: all four zones are on standard time.
	instant := time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)

	zones := brackets.ProjectZones(instant)

	assert.Equal(t, "12:00 PM", zones.PT)
	assert.Equal(t, "1:00 PM", zones.MT)
	assert.Equal(t, "2:00 PM", zones.CT)
	assert.Equal(t, "3:00 PM", zones.ET)
}

func TestProjectZones_DaylightSaving(t *testing.T) {
	// Early July: all four zones are on daylight saving time.
	instant := time.Date(2026, 7, 4, 19, 0, 0, 0, time.UTC)

	zones := brackets.ProjectZones(instant)

	assert.Equal(t, "12:00 PM", zones.PT)
	assert.Equal(t, "1:00 PM", zones.MT)
	assert.Equal(t, "2:00 PM", zones.CT)
	assert.Equal(t, "3:00 PM", zones.ET)
}

func TestProjectZones_NoDateComponent(t *testing.T) {
	// The projection around midnight crosses a date boundary in every US
	// zone, but only clock time is reported.
	instant := time.Date(2026, 1, 15, 4, 30, 0, 0, time.UTC)

	zones := brackets.ProjectZones(instant)

	assert.Equal(t, "8:30 PM", zones.PT)
	assert.Equal(t, "11:30 PM", zones.ET)
}
