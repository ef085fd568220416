package attendance

import (
	"time"

	"gorm.io/datatypes"
)

// DayOf truncates t to midnight of its calendar date in loc. The same
// reference zone must be used for every check so the one-sign-in-per-day
// rule does not shift across tiers or requests.
func DayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayOf(a, loc).Equal(DayOf(b, loc))
}

// DateOf returns the calendar date of t in loc as a datatypes.Date for the
// sign-in uniqueness column.
func DateOf(t time.Time, loc *time.Location) *datatypes.Date {
	d := datatypes.Date(DayOf(t, loc))
	return &d
}
