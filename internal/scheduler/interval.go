// Package scheduler holds the booking admission rules: half-open slot
// intervals, conflict detection, the status transition policy and pricing.
// It has no I/O; the usecase layer calls it while holding the slot lock.
package scheduler

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
	ErrEmptyWindow = errors.New("start time must be before end time")
)

// Interval is the half-open window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two windows share any instant. Windows that only
// touch at an edge (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Hours() float64 {
	return i.Duration().Hours()
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Slot is a requested window on one calendar day.
type Slot struct {
	Date   time.Time
	Window Interval
}

// ParseSlot turns the API's date and wall-clock strings into a slot. All
// values are interpreted in UTC so the same strings always compare equal.
func ParseSlot(date, start, end string) (Slot, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Slot{}, ErrInvalidDate
	}

	startAt, err := atTime(day, start)
	if err != nil {
		return Slot{}, err
	}
	endAt, err := atTime(day, end)
	if err != nil {
		return Slot{}, err
	}

	window := Interval{Start: startAt, End: endAt}
	if !window.Valid() {
		return Slot{}, ErrEmptyWindow
	}

	return Slot{Date: day, Window: window}, nil
}

func atTime(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// SlotKey names the lock that serialises admissions for one turf on one day.
func SlotKey(turfID fmt.Stringer, day time.Time) string {
	return fmt.Sprintf("turf:%s:%s", turfID.String(), day.Format(DateLayout))
}
