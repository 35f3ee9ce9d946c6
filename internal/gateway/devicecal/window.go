// Package devicecal exports calendar events to an external device calendar.
// Event dates and times are free text in the store; this package resolves
// them into concrete start/end instants.
package devicecal

import (
	"strings"
	"time"

	"familycore/pkg/domain"
)

const (
	defaultStartHour = 9
	defaultDuration  = time.Hour
)

// EventWindow is the concrete time span an event occupies on a device
// calendar.
type EventWindow struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Window resolves an event's Date and Time fields into a window in loc.
//
// The time field accepts "HH:MM" and "HH:MM-HH:MM". A single time gets the
// default one-hour duration. An empty or malformed time falls back to a
// 09:00 start; the event still exports, just at the default slot. An event
// whose date does not parse is reported as not exportable.
func Window(event domain.CalendarEvent, loc *time.Location) (EventWindow, bool) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(event.Date), loc)
	if err != nil {
		return EventWindow{}, false
	}
	startClock, endClock, ok := parseTimeRange(event.Time)
	if !ok {
		start := day.Add(time.Duration(defaultStartHour) * time.Hour)
		return EventWindow{Start: start, End: start.Add(defaultDuration)}, true
	}
	return EventWindow{Start: day.Add(startClock), End: day.Add(endClock)}, true
}

// parseTimeRange parses "HH:MM" or "HH:MM-HH:MM" into offsets from midnight.
// A single clock time implies the default duration.
func parseTimeRange(raw string) (start, end time.Duration, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(raw, "-", 2)
	start, ok = parseClock(parts[0])
	if !ok {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return start, start + defaultDuration, true
	}
	end, ok = parseClock(parts[1])
	if !ok || end <= start {
		return start, start + defaultDuration, true
	}
	return start, end, true
}

func parseClock(raw string) (time.Duration, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}
