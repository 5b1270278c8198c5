package brackets

import "time"

// ZoneTimes is the clock-time projection of one instant into the four
// continental US zones. Values carry no date component; the stored instant is
// never altered.
type ZoneTimes struct {
	PT string `json:"pt"`
	MT string `json:"mt"`
	CT string `json:"ct"`
	ET string `json:"et"`
}

const clockFormat = "3:04 PM"

// ProjectZones maps an absolute instant to its local clock time in each of
// the named US zones. The same formatting rule is used for display and CSV
// export. A zone the host cannot resolve degrades to an empty string for that
// column rather than failing the whole projection.
func ProjectZones(t time.Time) ZoneTimes {
	return ZoneTimes{
		PT: projectZone(t, "America/Los_Angeles"),
		MT: projectZone(t, "America/Denver"),
		CT: projectZone(t, "America/Chicago"),
		ET: projectZone(t, "America/New_York"),
	}
}

func projectZone(t time.Time, zoneID string) string {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(clockFormat)
}
