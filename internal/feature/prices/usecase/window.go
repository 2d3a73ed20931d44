package usecase

import "time"

// DateLayout is the calendar-date format used for checkpoints and request windows.
const DateLayout = "2006-01-02"

// Window is an inclusive range of calendar dates, both normalized to midnight UTC.
type Window struct {
	From time.Time
	To   time.Time
}

// Empty reports whether the window contains no dates.
func (w Window) Empty() bool {
	return w.From.After(w.To)
}

// Yesterday returns the calendar day before now, read on now's own clock.
// The current session is never requested because it may still be trading.
func Yesterday(now time.Time) time.Time {
	return DateOf(now.AddDate(0, 0, -1))
}

// DateOf drops the time of day and zone of t, keeping its wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
