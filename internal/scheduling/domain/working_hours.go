package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock        = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidWorkingHours = errors.New("working hours must start before they end")
)

// ClockTime is a wall-clock time of day in minutes after midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" in 24-hour notation.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

// On returns the instant of this clock time on the calendar day of date in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// WorkingHours is the daily interval in which meetings may be placed.
type WorkingHours struct {
	start ClockTime
	end   ClockTime
}

// DefaultWorkingHours returns 09:00-17:00.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{start: 9 * 60, end: 17 * 60}
}

// NewWorkingHours creates working hours from clock times.
func NewWorkingHours(start, end ClockTime) (WorkingHours, error) {
	if start >= end {
		return WorkingHours{}, fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, start, end)
	}
	return WorkingHours{start: start, end: end}, nil
}

// ParseWorkingHours parses a pair of "HH:MM" strings.
func ParseWorkingHours(start, end string) (WorkingHours, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return WorkingHours{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return WorkingHours{}, err
	}
	return NewWorkingHours(s, e)
}

func (w WorkingHours) Start() ClockTime { return w.start }
func (w WorkingHours) End() ClockTime   { return w.end }

// IsZero reports whether the working hours were never set.
func (w WorkingHours) IsZero() bool {
	return w.start == 0 && w.end == 0
}

// OnDate returns the working interval on the calendar day of date in loc.
func (w WorkingHours) OnDate(date time.Time, loc *time.Location) TimeRange {
	return TimeRange{start: w.start.On(date, loc), end: w.end.On(date, loc)}
}

func (w WorkingHours) String() string {
	return w.start.String() + "-" + w.end.String()
}
