package cache

import (
	"time"
)

// KiteResetHour is the hour (Asia/Kolkata) at which Kite access tokens expire
// and the instrument catalog is regenerated.
const KiteResetHour = 6

var kolkata = loadKolkata()

func loadKolkata() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// TimeUntilNextReset returns the time left until the next 06:00 Asia/Kolkata.
func TimeUntilNextReset() time.Duration {
	return timeUntilNextReset(time.Now())
}

func timeUntilNextReset(now time.Time) time.Duration {
	now = now.In(kolkata)

	next := time.Date(now.Year(), now.Month(), now.Day(), KiteResetHour, 0, 0, 0, kolkata)
	// Already past today's reset, use tomorrow's.
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}
