package sales

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when the end date is before the start date.
var ErrInvalidRange = errors.New("end date must not be before start date")

// Range is an inclusive window of whole calendar days:
// [start 00:00:00, end 23:59:59.999999999] in the store's timezone.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a Range covering the calendar days of start and end, as
// seen in loc.
func NewRange(start, end time.Time, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	s := startOfDay(start.In(loc))
	e := startOfDay(end.In(loc)).AddDate(0, 0, 1).Add(-time.Nanosecond)
	if e.Before(s) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: s, End: e}, nil
}

// ParseRange parses two YYYY-MM-DD dates in loc.
func ParseRange(start, end string, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	s, err := time.ParseInLocation(time.DateOnly, start, loc)
	if err != nil {
		return Range{}, err
	}
	e, err := time.ParseInLocation(time.DateOnly, end, loc)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e, loc)
}

// LastDays returns the range from days before now's date through now's
// date, both included. LastDays(now, 30) therefore spans 31 calendar days.
func LastDays(now time.Time, days int) Range {
	if days < 0 {
		days = 0
	}
	r, _ := NewRange(now.AddDate(0, 0, -days), now, now.Location())
	return r
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartDate returns the first day as YYYY-MM-DD.
func (r Range) StartDate() string {
	return r.Start.Format(time.DateOnly)
}

// EndDate returns the last day as YYYY-MM-DD.
func (r Range) EndDate() string {
	return r.End.Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
