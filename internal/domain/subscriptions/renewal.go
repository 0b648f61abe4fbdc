package subscriptions

import "time"

// NextRenewalDate advances a start date by one calendar month. Overflow
// days clamp to the last day of the target month (Jan 31 -> Feb 29 in a
// leap year), never wrap into the month after.
func NextRenewalDate(start time.Time) time.Time {
	year, month, day := start.Date()
	hour, min, sec := start.Clock()

	targetYear, targetMonth := year, month+1
	if targetMonth > time.December {
		targetYear++
		targetMonth = time.January
	}

	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}

	return time.Date(targetYear, targetMonth, day, hour, min, sec, start.Nanosecond(), start.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
