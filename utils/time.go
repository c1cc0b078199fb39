package utils

import "time"

// LoadZone returns the named location, falling back to UTC.
func LoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatSlot renders a start/end pair like "Mon, 04 Mar 2030 15:30 - 16:30 IST".
func FormatSlot(start, end time.Time, loc *time.Location) string {
	start, end = start.In(loc), end.In(loc)
	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return start.Format("Mon, 02 Jan 2006 15:04") + " - " + end.Format("15:04 MST")
	}
	return start.Format("Mon, 02 Jan 2006 15:04 MST") + " - " + end.Format("Mon, 02 Jan 2006 15:04 MST")
}
