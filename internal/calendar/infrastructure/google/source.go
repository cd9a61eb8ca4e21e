package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const defaultCalendarID = "primary"

// OAuthConfig identifies the OAuth client and the stored user token.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
}

// NewService creates a read-only Calendar API client authorised with the
// token stored in cfg.TokenFile. The token is refreshed transparently.
func NewService(ctx context.Context, cfg OAuthConfig, logger *slog.Logger) (*calendar.Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	token, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	if !token.Expiry.IsZero() && time.Until(token.Expiry) < 24*time.Hour && token.RefreshToken == "" {
		logger.Warn("oauth token nearing expiry", "expires_at", token.Expiry)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoints.Google,
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	httpClient.Timeout = 15 * time.Second

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar client: %w", err)
	}
	return srv, nil
}

// LoadToken reads an OAuth token saved as JSON.
func LoadToken(path string) (*oauth2.Token, error) {
	if path == "" {
		return nil, fmt.Errorf("google token file not configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("unable to decode token file %s: %w", path, err)
	}
	return token, nil
}

// Source reads existing meetings from a Google calendar.
type Source struct {
	service    *calendar.Service
	calendarID string
	logger     *slog.Logger
}

// NewSource creates a Google Calendar meeting source reading the primary calendar.
func NewSource(service *calendar.Service, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		service:    service,
		calendarID: defaultCalendarID,
		logger:     logger,
	}
}

// WithCalendarID selects a calendar other than primary.
func (s *Source) WithCalendarID(calendarID string) *Source {
	if calendarID != "" {
		s.calendarID = calendarID
	}
	return s
}

// ListMeetings returns the timed events overlapping [start, end), expanding
// recurring events into instances.
func (s *Source) ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]schedulingDomain.Meeting, error) {
	call := s.service.Events.List(s.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(start.UTC().Format(time.RFC3339)).
		TimeMax(end.UTC().Format(time.RFC3339))

	var (
		meetings []schedulingDomain.Meeting
		skipped  int
	)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			meeting, ok := toMeeting(userID, item)
			if !ok {
				skipped++
				continue
			}
			meetings = append(meetings, meeting)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	s.logger.DebugContext(ctx, "google meetings listed",
		"calendar_id", s.calendarID,
		"meetings", len(meetings),
		"skipped", skipped,
	)
	return meetings, nil
}

// toMeeting converts a timed event. All-day events carry only a date and are skipped.
func toMeeting(userID uuid.UUID, item *calendar.Event) (schedulingDomain.Meeting, bool) {
	if item == nil || item.Start == nil || item.End == nil {
		return schedulingDomain.Meeting{}, false
	}
	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return schedulingDomain.Meeting{}, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return schedulingDomain.Meeting{}, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return schedulingDomain.Meeting{}, false
	}
	dateRange, err := schedulingDomain.NewTimeRange(start.UTC(), end.UTC())
	if err != nil {
		return schedulingDomain.Meeting{}, false
	}

	status := schedulingDomain.MeetingStatusScheduled
	if item.Status == "cancelled" {
		status = schedulingDomain.MeetingStatusCancelled
	}

	return schedulingDomain.NewExternalMeeting(
		userID,
		schedulingDomain.SourceGoogle,
		item.Id,
		item.Summary,
		dateRange,
		status,
	), true
}
