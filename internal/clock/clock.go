package clock

import (
	"errors"
	"fmt"
	"time"
)

// DayKeyLayout is the layout of a calendar-day key
const DayKeyLayout = "2006-01-02"

var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey identifies a calendar day independent of time of day, e.g. "2026-02-07"
type DayKey string

// Clock supplies the current moment
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the given location (Local when nil)
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed always returns the same moment. Used in tests and by the ops CLI.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// Today returns the calendar-day key of the clock's current moment
func Today(c Clock) DayKey {
	return DayOf(c.Now())
}

// DayOf returns the calendar-day key of t in t's own location
func DayOf(t time.Time) DayKey {
	return DayKey(t.Format(DayKeyLayout))
}

func (k DayKey) String() string {
	return string(k)
}

// Date splits the key into its calendar components
func (k DayKey) Date() (year int, month time.Month, day int, err error) {
	t, err := time.Parse(DayKeyLayout, string(k))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w %q: %v", ErrInvalidDayKey, string(k), err)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// DaysBetween returns to - from in whole calendar days.
// Both keys are pinned to midnight UTC so daylight-saving shifts never skew the result.
func DaysBetween(from, to DayKey) (int, error) {
	fy, fm, fd, err := from.Date()
	if err != nil {
		return 0, err
	}
	ty, tm, td, err := to.Date()
	if err != nil {
		return 0, err
	}

	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / 86400), nil
}
