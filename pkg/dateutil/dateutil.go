package dateutil

import (
	"time"

	"github.com/shelfmark/backend/internal/entity"
)

// DayKeyLayout is the calendar-date key format used everywhere a civil
// day is referenced (reading days, activity windows, streaks).
const DayKeyLayout = "2006-01-02"

// Location resolves an IANA zone name. An empty or unknown name falls
// back to UTC so that day boundaries stay deterministic across
// deployment environments instead of following the machine zone.
func Location(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// DayKey formats the civil day an instant falls on in the given zone.
// Two instants on the same civil day always produce the same key.
func DayKey(t time.Time, timezone string) string {
	return t.In(Location(timezone)).Format(DayKeyLayout)
}

// PrevDayKey returns the key of the civil day immediately preceding key
// in the given zone. The candidate instant is anchored at noon, so days
// whose midnight does not exist (spring-forward transitions) still
// resolve inside the correct civil day before stepping back.
func PrevDayKey(key string, timezone string) (string, error) {
	loc := Location(timezone)
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return "", err
	}

	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
	return DayKey(noon.AddDate(0, 0, -1), timezone), nil
}

var mondayOffsets = map[time.Weekday]int{
	time.Monday:    0,
	time.Tuesday:   1,
	time.Wednesday: 2,
	time.Thursday:  3,
	time.Friday:    4,
	time.Saturday:  5,
	time.Sunday:    6,
}

var sundayOffsets = map[time.Weekday]int{
	time.Sunday:    0,
	time.Monday:    1,
	time.Tuesday:   2,
	time.Wednesday: 3,
	time.Thursday:  4,
	time.Friday:    5,
	time.Saturday:  6,
}

// StartOfWeek returns civil midnight of the first day of the week
// containing now, under the given week-start convention and zone.
func StartOfWeek(now time.Time, weekStart entity.WeekStart, timezone string) time.Time {
	offsets := mondayOffsets
	if weekStart == entity.WeekStartSunday {
		offsets = sundayOffsets
	}

	loc := Location(timezone)
	local := now.In(loc)
	d := local.AddDate(0, 0, -offsets[local.Weekday()])
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
