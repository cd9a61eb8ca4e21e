package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/execassist/internal/calendar/application"
	"github.com/felixgeelhaar/execassist/internal/calendar/infrastructure/caldav"
	googleCal "github.com/felixgeelhaar/execassist/internal/calendar/infrastructure/google"
)

// Provider names accepted in configuration.
const (
	ProviderNone   = "none"
	ProviderCalDAV = "caldav"
	ProviderApple  = "apple"
	ProviderGoogle = "google"
)

// ErrUnknownProvider is returned for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown calendar provider")

// CalDAVConfig holds CalDAV connection settings.
type CalDAVConfig struct {
	URL          string
	Username     string
	Password     string
	CalendarPath string
}

// GoogleConfig holds Google Calendar settings.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CalendarID   string
}

// ProviderConfig selects and configures the calendar provider.
type ProviderConfig struct {
	Provider string
	CalDAV   CalDAVConfig
	Google   GoogleConfig
	Breaker  application.BreakerConfig
	Logger   *slog.Logger
}

// NewMeetingSource builds the configured provider wrapped in a circuit
// breaker. It returns nil when no provider is configured.
func NewMeetingSource(ctx context.Context, config ProviderConfig) (*application.CompositeSource, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	var (
		source application.MeetingSource
		err    error
	)
	switch provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderCalDAV, ProviderApple:
		source, err = newCalDAVSource(provider, config.CalDAV, logger)
	case ProviderGoogle:
		source, err = newGoogleSource(ctx, config.Google, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
	if err != nil {
		return nil, err
	}

	guarded := application.NewBreakerSource(provider, source, config.Breaker, logger)
	logger.Debug("registered calendar provider", "provider", provider)
	return application.NewCompositeSource(logger, application.NamedSource{Name: provider, Source: guarded}), nil
}

func newCalDAVSource(provider string, cfg CalDAVConfig, logger *slog.Logger) (*caldav.Source, error) {
	baseURL := cfg.URL
	if baseURL == "" && provider == ProviderApple {
		baseURL = caldav.AppleCalDAVURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("CalDAV URL not configured")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("CalDAV username not configured")
	}

	source := caldav.NewSource(baseURL, cfg.Username, cfg.Password, logger)
	if cfg.CalendarPath != "" {
		source.WithCalendarPath(cfg.CalendarPath)
	}
	return source, nil
}

func newGoogleSource(ctx context.Context, cfg GoogleConfig, logger *slog.Logger) (*googleCal.Source, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("google client id not configured")
	}
	srv, err := googleCal.NewService(ctx, googleCal.OAuthConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenFile:    cfg.TokenFile,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create google calendar client: %w", err)
	}
	return googleCal.NewSource(srv, logger).WithCalendarID(cfg.CalendarID), nil
}
