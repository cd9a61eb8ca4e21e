package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// TimeRange is an immutable half-open interval [start, end).
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange creates a time range. The start must be strictly before the end.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: %s - %s", ErrInvalidTimeRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{start: start, end: end}, nil
}

// MustNewTimeRange creates a time range or panics.
func MustNewTimeRange(start, end time.Time) TimeRange {
	tr, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return tr
}

// TimeRangeFor creates a range of the given length starting at start.
func TimeRangeFor(start time.Time, d time.Duration) (TimeRange, error) {
	return NewTimeRange(start, start.Add(d))
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

// IsZero reports whether the range was never initialized.
func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// DurationMinutes returns the length of the range in whole minutes.
func (r TimeRange) DurationMinutes() int {
	return int(r.Duration().Minutes())
}

// Overlaps reports whether two ranges share any instant. Ranges that only
// touch at an endpoint do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Contains reports whether t lies within [start, end).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// Encloses reports whether other lies entirely within this range.
func (r TimeRange) Encloses(other TimeRange) bool {
	return !other.start.Before(r.start) && !other.end.After(r.end)
}

// Expand returns a new range widened by margin on both sides.
func (r TimeRange) Expand(margin time.Duration) TimeRange {
	return TimeRange{start: r.start.Add(-margin), end: r.end.Add(margin)}
}

// In returns the same range expressed in loc.
func (r TimeRange) In(loc *time.Location) TimeRange {
	return TimeRange{start: r.start.In(loc), end: r.end.In(loc)}
}

// Equal reports whether both ranges denote the same instants.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.start.Format("2006-01-02 15:04"), r.end.Format("15:04"))
}
