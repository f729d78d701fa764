package report

import "time"

// weekStart returns the Monday 00:00:00 UTC of the given ISO week.
// Week 1 is the week containing the year's first Thursday, which always
// contains January 4th.
func weekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	// time.Weekday has Sunday == 0; ISO weeks start on Monday.
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}
	firstMonday := jan4.AddDate(0, 0, 1-offset)

	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// weekWindow returns the inclusive query window [Monday 00:00, end of Sunday]
// of the given ISO week.
func weekWindow(year, week int) (from, to time.Time) {
	from = weekStart(year, week)
	to = from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return from, to
}

// endOfDay returns the last instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).
		Add(-time.Nanosecond)
}

// startOfDay returns midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
