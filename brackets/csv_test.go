package brackets_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/bracket-system/brackets"
	"github.com/streampair/bracket-system/models"
)

func sampleSlot(start time.Time, creator1, creator2 string) models.Slot {
	slot := models.NewSlot(start)
	slot.Creator1 = models.SlotCreator{
		Name:            creator1,
		NetworkOrAgency: "Agency X",
		Category:        "Lifestyle",
		DiamondAverage:  "1500",
	}
	slot.Creator2 = models.SlotCreator{
		Name:            creator2,
		NetworkOrAgency: "Agency Y",
		Category:        "Gaming",
		DiamondAverage:  "900",
	}
	slot.Notes = "friendly rematch"
	slot.Link = "https://example.com/match"
	return slot
}

func TestEncodeSlotsCSV_HeaderAndRowCount(t *testing.T) {
	slots := []models.Slot{
		sampleSlot(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC), "A", "B"),
		sampleSlot(time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC), "C", "D"),
	}

	out := brackets.EncodeSlotsCSV(slots)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "1 header + 2 rows")
	assert.True(t, strings.HasPrefix(lines[0], "Date,PT,MT,CT,ET,Creator1"))
	assert.Len(t, strings.Split(lines[1], ","), 16)
	assert.True(t, strings.HasPrefix(lines[1], "3/14/2026,"))
}

// Export-then-import reproduces every CSV-carried field; only the
// time-of-day of the start instant is lost, because the Date column carries
// the date portion alone.
func TestCSV_DateOnlyRoundTrip(t *testing.T) {
	original := []models.Slot{
		sampleSlot(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC), "A", "B"),
		sampleSlot(time.Date(2026, 11, 2, 9, 15, 0, 0, time.UTC), "C", "D"),
	}
	original[1].Status = models.SlotStatusConfirmed

	decoded := brackets.DecodeSlotsCSV(brackets.EncodeSlotsCSV(original), nil)

	require.Len(t, decoded, 2)
	for i, slot := range decoded {
		assert.Equal(t, original[i].Creator1.Name, slot.Creator1.Name)
		assert.Equal(t, original[i].Creator1.NetworkOrAgency, slot.Creator1.NetworkOrAgency)
		assert.Equal(t, original[i].Creator1.Category, slot.Creator1.Category)
		assert.Equal(t, original[i].Creator1.DiamondAverage, slot.Creator1.DiamondAverage)
		assert.Equal(t, original[i].Creator2.Name, slot.Creator2.Name)
		assert.Equal(t, original[i].Creator2.Category, slot.Creator2.Category)
		assert.Equal(t, original[i].Status, slot.Status)
		assert.Equal(t, original[i].Notes, slot.Notes)
		assert.Equal(t, original[i].Link, slot.Link)

		// Date survives; time-of-day does not.
		assert.Equal(t, original[i].StartDateTime.Format("1/2/2006"), slot.StartDateTime.Format("1/2/2006"))
		assert.Equal(t, 0, slot.StartDateTime.Hour())
		assert.Equal(t, 0, slot.StartDateTime.Minute())
	}
}

// Known limitation: encode quote-escapes fields containing commas, but the
// decoder splits on every comma regardless of quoting, so such fields come
// back mis-split. This pins the legacy behavior; changing the decoder to be
// quote aware means rewriting this test to assert a clean round trip.
func TestCSV_CommaFieldMisSplitsOnDecode(t *testing.T) {
	slot := sampleSlot(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), "A", "B")
	slot.Notes = "bring merch, arrive early"

	out := brackets.EncodeSlotsCSV([]models.Slot{slot})
	assert.Contains(t, out, `"bring merch, arrive early"`)

	decoded := brackets.DecodeSlotsCSV(out, nil)
	require.Len(t, decoded, 1)
	assert.NotEqual(t, slot.Notes, decoded[0].Notes)
	assert.Equal(t, `"bring merch`, decoded[0].Notes)
}

func TestEncodeSlotsCSV_QuoteEscaping(t *testing.T) {
	slot := sampleSlot(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), `The "Ace"`, "B")

	out := brackets.EncodeSlotsCSV([]models.Slot{slot})

	assert.Contains(t, out, `"The ""Ace"""`)
}

func TestDecodeSlotsCSV_DropsShortRows(t *testing.T) {
	full := sampleSlot(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), "A", "B")
	text := brackets.EncodeSlotsCSV([]models.Slot{full})
	text += "too,few,columns\n"
	text += "\n"

	decoded := brackets.DecodeSlotsCSV(text, nil)

	require.Len(t, decoded, 1)
	assert.Equal(t, "A", decoded[0].Creator1.Name)
}

func TestDecodeSlotsCSV_UnknownStatusDefaultsToPending(t *testing.T) {
	row := "3/14/2026,,,,,A,Net,Cat,100,B,Net,Cat,200,Definitely Maybe,notes,link"
	text := "header line\n" + row + "\n"

	decoded := brackets.DecodeSlotsCSV(text, nil)

	require.Len(t, decoded, 1)
	assert.Equal(t, models.SlotStatusPending, decoded[0].Status)
}

func TestDecodeSlotsCSV_UnparseableDateDefaultsToNow(t *testing.T) {
	fixedNow := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	row := "not-a-date,,,,,A,Net,Cat,100,B,Net,Cat,200,Pending,notes,link"
	text := "header line\n" + row + "\n"

	decoded := brackets.DecodeSlotsCSV(text, func() time.Time { return fixedNow })

	require.Len(t, decoded, 1)
	assert.Equal(t, fixedNow, decoded[0].StartDateTime)
}

func TestDecodeSlotsCSV_RegeneratesIDsAndClearsConfirmation(t *testing.T) {
	slot := sampleSlot(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), "A", "B")
	slot.Creator1.Confirmed = true
	slot.Creator2.Confirmed = true

	decoded := brackets.DecodeSlotsCSV(brackets.EncodeSlotsCSV([]models.Slot{slot}), nil)

	require.Len(t, decoded, 1)
	assert.NotEmpty(t, decoded[0].ID)
	assert.NotEqual(t, slot.ID, decoded[0].ID)
	assert.False(t, decoded[0].Creator1.Confirmed)
	assert.False(t, decoded[0].Creator2.Confirmed)
}

func TestDecodeSlotsCSV_EmptyInput(t *testing.T) {
	assert.Empty(t, brackets.DecodeSlotsCSV("", nil))
	assert.Empty(t, brackets.DecodeSlotsCSV("\n\n", nil))
}

func TestTemplateCSV(t *testing.T) {
	out := brackets.TemplateCSV()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header + two example rows")

	decoded := brackets.DecodeSlotsCSV(out, nil)
	require.Len(t, decoded, 2)
	assert.Equal(t, models.SlotStatusPending, decoded[0].Status)
	assert.Equal(t, models.SlotStatusConfirmed, decoded[1].Status)
}
