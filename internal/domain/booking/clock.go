package booking

import (
	"fmt"
	"time"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
)

// Slot math runs on minutes since midnight; HH:MM strings exist only at the
// API and storage boundary.

func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// At anchors minutes-since-midnight onto a calendar day in loc.
func At(date time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		loc,
	)
}

// DayStart truncates date to midnight in loc.
func DayStart(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
