// Package daterange models the inclusive calendar day ranges rentals are
// quoted in. All dates are normalized to UTC midnight; wall-clock times and
// zones never participate in availability decisions.
package daterange

import (
	"fmt"
	"time"
)

// Layout is the wire format for rental dates.
const Layout = "2006-01-02"

// DateRange is an inclusive range of calendar days. End is the last rented
// day, not the day after.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New builds a range from two instants, normalizing both to UTC midnight.
func New(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s",
			r.End.Format(Layout), r.Start.Format(Layout))
	}
	return r, nil
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(Layout, start, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
	}
	e, err := time.ParseInLocation(Layout, end, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	return New(s, e)
}

// Overlaps reports whether the two inclusive ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains reports whether t's calendar day falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// DurationDays returns the number of billable days, never less than one.
// A range is priced by nights-style day count, so June 1 to June 5 is four
// days and a same-day rental still bills one.
func (r DateRange) DurationDays() int {
	days := int(r.End.Sub(r.Start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Days enumerates every calendar day in the range, inclusive on both ends.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return r.Start.Format(Layout) + ".." + r.End.Format(Layout)
}
