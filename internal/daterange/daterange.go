// Package daterange computes the custom month and week windows every
// aggregation in the app is anchored to. A "month" here runs from a
// user-configured start day (1-28) to the day before it in the next month,
// not necessarily the calendar month.
package daterange

import "time"

// Range is an inclusive date window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, boundaries included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthRange returns the custom month window containing ref. With startDay 1
// it is the plain calendar month. Otherwise: on or after the start day the
// window runs from startDay of this month to startDay-1 of the next; before
// it, from startDay of the previous month to startDay-1 of this one.
// Boundaries are normalized to 00:00:00 and 23:59:59.999999999 in ref's
// location.
func MonthRange(ref time.Time, startDay int) Range {
	loc := ref.Location()
	year, month, day := ref.Date()

	if startDay <= 1 {
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return Range{Start: start, End: end}
	}

	var start time.Time
	if day >= startDay {
		start = time.Date(year, month, startDay, 0, 0, 0, 0, loc)
	} else {
		start = time.Date(year, month-1, startDay, 0, 0, 0, 0, loc)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Range{Start: start, End: end}
}

// weekDays are the rotation base for RotateWeekDays.
var weekDays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var weekStartByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// WeekStartIndex maps a day name to its weekday. Unrecognized names fall
// back to Sunday; the permissive default is intentional, settings written
// by hand should not wedge every aggregation.
func WeekStartIndex(dayName string) time.Weekday {
	if d, ok := weekStartByName[dayName]; ok {
		return d
	}
	return time.Sunday
}

// RotateWeekDays returns the seven day labels starting at the configured
// start day.
func RotateWeekDays(startDay string) []string {
	i := int(WeekStartIndex(startDay))
	out := make([]string, 0, len(weekDays))
	out = append(out, weekDays[i:]...)
	out = append(out, weekDays[:i]...)
	return out
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// CalendarDaysBetween returns the number of calendar-day boundaries between
// earlier and later (0 for same day, 1 for adjacent days), ignoring the
// time of day.
func CalendarDaysBetween(earlier, later time.Time) int {
	ey, em, ed := earlier.Date()
	ly, lm, ld := later.In(earlier.Location()).Date()
	start := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	end := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
