package booking

import (
	"time"

	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

// Window is an open interval of a salon's day, in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// ResolveHours maps date to the salon's open window for that weekday.
// A missing entry, an IsOff day, or an unparseable window all resolve to
// closed.
func ResolveHours(hours []models.BusinessHour, date time.Time) (Window, bool) {
	weekday := int(date.Weekday())

	for _, h := range hours {
		if h.Weekday != weekday || h.IsOff {
			continue
		}

		start, err := ParseClock(h.StartTime)
		if err != nil {
			return Window{}, false
		}
		end, err := ParseClock(h.EndTime)
		if err != nil {
			return Window{}, false
		}
		if end <= start {
			return Window{}, false
		}

		return Window{Start: start, End: end}, true
	}

	return Window{}, false
}
