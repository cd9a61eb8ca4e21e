package services

import (
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
)

// SlotLength is the granularity of candidate slots.
const SlotLength = 30 * time.Minute

// BuildAvailabilityWindows returns one window per calendar day between start
// and end (inclusive, evaluated in loc), each holding consecutive 30 minute
// slots that lie entirely inside that day's working hours. Weekends are
// skipped when excludeWeekends is set.
func BuildAvailabilityWindows(start, end time.Time, hours domain.WorkingHours, excludeWeekends bool, loc *time.Location) []domain.AvailabilityWindow {
	if loc == nil {
		loc = time.UTC
	}
	if end.Before(start) {
		return nil
	}

	first := startOfDay(start, loc)
	last := startOfDay(end, loc)

	var windows []domain.AvailabilityWindow
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if excludeWeekends && isWeekend(d.Weekday()) {
			continue
		}

		workday := hours.OnDate(d, loc)
		var slots []domain.TimeRange
		for s := workday.Start(); !s.Add(SlotLength).After(workday.End()); s = s.Add(SlotLength) {
			slots = append(slots, domain.MustNewTimeRange(s, s.Add(SlotLength)))
		}

		windows = append(windows, domain.AvailabilityWindow{
			Date:           d,
			Hours:          workday,
			AvailableSlots: slots,
		})
	}
	return windows
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
