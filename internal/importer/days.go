package importer

import "time"

// DaysInYear lists every calendar day of year as UTC midnights, Jan 1 first.
// Days after now's calendar date are left out, so the current year stops
// at today and a future year is empty.
func DaysInYear(year int, now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		if d.After(today) {
			break
		}
		days = append(days, d)
	}
	return days
}
