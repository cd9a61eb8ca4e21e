package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
)

// ErrInvalidTime is returned for unparseable time input.
var ErrInvalidTime = errors.New("invalid time")

// RequestDefaults are applied to scheduling requests that do not set their
// own working hours or zone.
type RequestDefaults struct {
	Location     *time.Location
	WorkingHours schedulingDomain.WorkingHours
}

// NewSchedulingRequest builds a request carrying the configured defaults.
func (d RequestDefaults) NewSchedulingRequest(title string, durationMinutes int, attendees ...string) schedulingDomain.SchedulingRequest {
	req := schedulingDomain.NewSchedulingRequest(title, durationMinutes, attendees...)
	req.Location = d.Location
	req.WorkingHours = d.WorkingHours
	return req
}

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime reads an RFC 3339 timestamp, or a local "YYYY-MM-DD[ HH:MM]"
// value interpreted in the configured zone.
func (d RequestDefaults) ParseTime(value string) (time.Time, error) {
	loc := d.loc()
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, use RFC 3339 or YYYY-MM-DD HH:MM", ErrInvalidTime, value)
}

// ParseOptionalTime is ParseTime for optional values.
func (d RequestDefaults) ParseOptionalTime(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := d.ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d RequestDefaults) loc() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// MeetingRequestInput is the loosely typed form of a scheduling request as
// the CLI and MCP surfaces receive it. Zero values keep the defaults.
type MeetingRequestInput struct {
	Title           string
	DurationMinutes int
	Attendees       []string
	// PreferredTimes are "start/end" pairs in any ParseTime format.
	PreferredTimes  []string
	Earliest        string
	Latest          string
	WorkStart       string
	WorkEnd         string
	IncludeWeekends bool
	BufferMinutes   *int
}

// BuildSchedulingRequest parses in against the defaults. Malformed times are
// errors; semantic problems are left for request validation.
func (d RequestDefaults) BuildSchedulingRequest(in MeetingRequestInput) (schedulingDomain.SchedulingRequest, error) {
	req := d.NewSchedulingRequest(strings.TrimSpace(in.Title), in.DurationMinutes, nonEmpty(in.Attendees)...)
	req.ExcludeWeekends = !in.IncludeWeekends
	if in.BufferMinutes != nil {
		req.BufferMinutes = *in.BufferMinutes
	}

	var err error
	if req.EarliestDate, err = d.ParseOptionalTime(in.Earliest); err != nil {
		return req, fmt.Errorf("earliest: %w", err)
	}
	if req.LatestDate, err = d.ParseOptionalTime(in.Latest); err != nil {
		return req, fmt.Errorf("latest: %w", err)
	}

	if in.WorkStart != "" || in.WorkEnd != "" {
		base := d.WorkingHours
		if base.IsZero() {
			base = schedulingDomain.DefaultWorkingHours()
		}
		start, end := in.WorkStart, in.WorkEnd
		if start == "" {
			start = base.Start().String()
		}
		if end == "" {
			end = base.End().String()
		}
		if req.WorkingHours, err = schedulingDomain.ParseWorkingHours(start, end); err != nil {
			return req, err
		}
	}

	for _, pair := range in.PreferredTimes {
		r, err := d.parseRange(pair)
		if err != nil {
			return req, fmt.Errorf("preferred time %q: %w", pair, err)
		}
		req.PreferredTimes = append(req.PreferredTimes, r)
	}
	return req, nil
}

func (d RequestDefaults) parseRange(pair string) (schedulingDomain.TimeRange, error) {
	startText, endText, ok := strings.Cut(pair, "/")
	if !ok {
		return schedulingDomain.TimeRange{}, fmt.Errorf("%w: expected start/end", ErrInvalidTime)
	}
	start, err := d.ParseTime(startText)
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}
	end, err := d.ParseTime(endText)
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}
	return schedulingDomain.NewTimeRange(start, end)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
