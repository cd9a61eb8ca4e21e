package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxMeetingMinutes is the longest meeting that can be requested.
	MaxMeetingMinutes = 480
	// DefaultBufferMinutes is the gap kept around existing meetings.
	DefaultBufferMinutes = 15
)

// SchedulingRequest describes a meeting to be placed. Use
// NewSchedulingRequest to get the default weekend and buffer policy.
type SchedulingRequest struct {
	Title           string
	DurationMinutes int
	Attendees       []string
	PreferredTimes  []TimeRange
	EarliestDate    *time.Time
	LatestDate      *time.Time
	// WorkingHours falls back to DefaultWorkingHours when zero.
	WorkingHours    WorkingHours
	ExcludeWeekends bool
	BufferMinutes   int
	// Location is the zone in which days, hours and weekdays are evaluated.
	// Nil means UTC.
	Location *time.Location
}

// NewSchedulingRequest creates a request that excludes weekends and keeps a
// 15 minute buffer.
func NewSchedulingRequest(title string, durationMinutes int, attendees ...string) SchedulingRequest {
	return SchedulingRequest{
		Title:           title,
		DurationMinutes: durationMinutes,
		Attendees:       attendees,
		ExcludeWeekends: true,
		BufferMinutes:   DefaultBufferMinutes,
	}
}

// Duration returns the requested meeting length.
func (r SchedulingRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Buffer returns the margin kept around existing meetings.
func (r SchedulingRequest) Buffer() time.Duration {
	return time.Duration(r.BufferMinutes) * time.Minute
}

// Hours returns the effective working hours.
func (r SchedulingRequest) Hours() WorkingHours {
	if r.WorkingHours.IsZero() {
		return DefaultWorkingHours()
	}
	return r.WorkingHours
}

// Loc returns the effective location.
func (r SchedulingRequest) Loc() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// ValidateMeetingRequest returns human-readable problems with the request.
// An empty result means the request can be scheduled. It never panics.
func ValidateMeetingRequest(r SchedulingRequest) []string {
	var errs []string

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "Meeting title is required")
	}
	if r.DurationMinutes <= 0 {
		errs = append(errs, "Duration must be greater than 0 minutes")
	} else if r.DurationMinutes > MaxMeetingMinutes {
		errs = append(errs, fmt.Sprintf("Duration cannot exceed %d minutes (8 hours)", MaxMeetingMinutes))
	}

	attendees := 0
	for _, a := range r.Attendees {
		if strings.TrimSpace(a) != "" {
			attendees++
		}
	}
	if attendees == 0 {
		errs = append(errs, "At least one attendee is required")
	}

	if r.EarliestDate != nil && r.LatestDate != nil && !r.EarliestDate.Before(*r.LatestDate) {
		errs = append(errs, "Earliest date must be before latest date")
	}
	if r.BufferMinutes < 0 {
		errs = append(errs, "Buffer minutes cannot be negative")
	}
	if r.DurationMinutes > 0 && r.DurationMinutes <= MaxMeetingMinutes {
		hours := r.Hours()
		if int(hours.End()-hours.Start()) < r.DurationMinutes {
			errs = append(errs, fmt.Sprintf("Duration does not fit within working hours %s", hours))
		}
	}

	return errs
}
