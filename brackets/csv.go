package brackets

import (
	"strings"
	"time"

	"github.com/streampair/bracket-system/models"
)

const (
	csvColumnCount = 16
	csvDateFormat  = "1/2/2006"
)

var csvHeader = []string{
	"Date", "PT", "MT", "CT", "ET",
	"Creator1", "Net/Agency1", "Cat1", "Diamond1",
	"Creator2", "Net/Agency2", "Cat2", "Diamond2",
	"Status", "Notes", "Link",
}

// EncodeSlotsCSV serializes an ordered slot collection to the exchange
// format: one header line, then one 16-field line per slot.
//
// The Date column carries the date portion only of the slot's start instant;
// time-of-day survives solely in the per-zone clock columns, which are not
// read back on decode. Export-then-import loses time-of-day.
func EncodeSlotsCSV(slots []models.Slot) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, slot := range slots {
		zones := ProjectZones(slot.StartDateTime)
		fields := []string{
			slot.StartDateTime.Format(csvDateFormat),
			zones.PT, zones.MT, zones.CT, zones.ET,
			slot.Creator1.Name, slot.Creator1.NetworkOrAgency, slot.Creator1.Category, slot.Creator1.DiamondAverage,
			slot.Creator2.Name, slot.Creator2.NetworkOrAgency, slot.Creator2.Category, slot.Creator2.DiamondAverage,
			string(slot.Status), slot.Notes, slot.Link,
		}
		for i, f := range fields {
			fields[i] = escapeCSVField(f)
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// escapeCSVField wraps a field in double quotes, doubling internal quotes,
// when the field contains a comma or a quote. All other fields pass through
// unescaped.
func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// DecodeSlotsCSV parses exchange-format text back into slots. The first
// non-empty line is treated as the header and dropped.
//
// The per-row split is NOT quote aware: a field that was quote-escaped on
// encode because it contained a comma will be mis-split here. That matches
// the files the mobile client has always produced and consumed, so the
// asymmetry is kept rather than fixed; csv_test.go pins it down.
//
// Rows with fewer than 16 columns are dropped silently. An unrecognized
// status label becomes Pending, an unparseable date becomes now(). Slot IDs
// are regenerated and the confirmed flags start false: neither travels
// through the file.
func DecodeSlotsCSV(text string, now func() time.Time) []models.Slot {
	if now == nil {
		now = time.Now
	}

	slots := make([]models.Slot, 0)
	headerSeen := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < csvColumnCount {
			continue
		}

		start, err := time.ParseInLocation(csvDateFormat, cols[0], time.Local)
		if err != nil {
			start = now()
		}

		slot := models.NewSlot(start)
		slot.Creator1 = models.SlotCreator{
			Name:            cols[5],
			NetworkOrAgency: cols[6],
			Category:        cols[7],
			DiamondAverage:  cols[8],
		}
		slot.Creator2 = models.SlotCreator{
			Name:            cols[9],
			NetworkOrAgency: cols[10],
			Category:        cols[11],
			DiamondAverage:  cols[12],
		}
		slot.Status = models.ParseSlotStatus(cols[13])
		slot.Notes = cols[14]
		slot.Link = cols[15]
		slots = append(slots, slot)
	}
	return slots
}

// TemplateCSV returns the distributable starting-point file: the header plus
// two static example rows.
func TemplateCSV() string {
	rows := []string{
		strings.Join(csvHeader, ","),
		"1/15/2026,6:00 PM,7:00 PM,8:00 PM,9:00 PM,CreatorOne,Agency A,Lifestyle,1200,CreatorTwo,Agency B,Gaming,900,Pending,First example row,https://example.com/match1",
		"1/16/2026,7:30 PM,8:30 PM,9:30 PM,10:30 PM,CreatorThree,Independent,Music,450,CreatorFour,Agency C,Comedy,800,Confirmed,Second example row,https://example.com/match2",
	}
	return strings.Join(rows, "\n") + "\n"
}
