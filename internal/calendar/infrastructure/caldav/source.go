package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
)

// Common CalDAV server URLs
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

// Source reads existing meetings from a CalDAV calendar (Apple Calendar,
// Fastmail, Nextcloud, etc.).
type Source struct {
	baseURL      string
	username     string
	password     string // App-specific password for Apple
	calendarPath string // Specific calendar path, or empty for default
	timeout      time.Duration
	logger       *slog.Logger
}

// NewSource creates a CalDAV meeting source.
func NewSource(baseURL, username, password string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		baseURL:  baseURL,
		username: username,
		password: password,
		timeout:  30 * time.Second,
		logger:   logger,
	}
}

// WithCalendarPath sets the specific calendar path to use.
func (s *Source) WithCalendarPath(path string) *Source {
	s.calendarPath = path
	return s
}

// ListMeetings returns the VEVENTs overlapping [start, end) as meeting
// snapshots. All-day events are skipped.
func (s *Source) ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]schedulingDomain.Meeting, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	calPath, err := s.findCalendarPath(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	objects, err := client.QueryCalendar(ctx, calPath, eventQuery(start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	meetings := make([]schedulingDomain.Meeting, 0, len(objects))
	for i := range objects {
		meeting, ok := toMeeting(userID, &objects[i])
		if !ok {
			continue
		}
		meetings = append(meetings, meeting)
	}

	s.logger.DebugContext(ctx, "caldav meetings listed",
		"calendar", calPath,
		"objects", len(objects),
		"meetings", len(meetings),
	)
	return meetings, nil
}

func eventQuery(start, end time.Time) *caldav.CalendarQuery {
	return &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"SUMMARY", "DTSTART", "DTEND", "DURATION", "UID", "STATUS"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: start.UTC(),
					End:   end.UTC(),
				},
			},
		},
	}
}

func (s *Source) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: s.timeout}
	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, s.username, s.password), s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (s *Source) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if s.calendarPath != "" {
		return s.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}

	// Use first calendar as default
	return cals[0].Path, nil
}

// toMeeting converts the first VEVENT of a calendar object. It reports false
// for objects without a timed event.
func toMeeting(userID uuid.UUID, obj *caldav.CalendarObject) (schedulingDomain.Meeting, bool) {
	if obj == nil || obj.Data == nil {
		return schedulingDomain.Meeting{}, false
	}

	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}

		startProp := child.Props.Get(ical.PropDateTimeStart)
		if startProp == nil || startProp.ValueType() == ical.ValueDate {
			return schedulingDomain.Meeting{}, false
		}

		event := &ical.Event{Component: child}
		start, err := event.DateTimeStart(time.UTC)
		if err != nil {
			return schedulingDomain.Meeting{}, false
		}
		end, err := event.DateTimeEnd(time.UTC)
		if err != nil {
			return schedulingDomain.Meeting{}, false
		}
		dateRange, err := schedulingDomain.NewTimeRange(start.UTC(), end.UTC())
		if err != nil {
			return schedulingDomain.Meeting{}, false
		}

		externalID := obj.Path
		if uid := child.Props.Get(ical.PropUID); uid != nil && uid.Value != "" {
			externalID = uid.Value
		}
		var title string
		if summary := child.Props.Get(ical.PropSummary); summary != nil {
			title = summary.Value
		}

		return schedulingDomain.NewExternalMeeting(
			userID,
			schedulingDomain.SourceCalDAV,
			externalID,
			title,
			dateRange,
			meetingStatus(child.Props.Get(ical.PropStatus)),
		), true
	}

	return schedulingDomain.Meeting{}, false
}

func meetingStatus(prop *ical.Prop) schedulingDomain.MeetingStatus {
	if prop != nil && strings.EqualFold(strings.TrimSpace(prop.Value), "CANCELLED") {
		return schedulingDomain.MeetingStatusCancelled
	}
	return schedulingDomain.MeetingStatusScheduled
}
