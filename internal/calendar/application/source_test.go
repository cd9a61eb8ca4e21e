package application_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/calendar/application"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu       sync.Mutex
	meetings []schedulingDomain.Meeting
	err      error
	calls    int
}

func (s *stubSource) ListMeetings(context.Context, uuid.UUID, time.Time, time.Time) ([]schedulingDomain.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.meetings, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var windowStart = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func externalMeeting(userID uuid.UUID, source, externalID string, hour int) schedulingDomain.Meeting {
	start := windowStart.Add(time.Duration(hour) * time.Hour)
	return schedulingDomain.NewExternalMeeting(
		userID, source, externalID, "Sync "+externalID,
		schedulingDomain.MustNewTimeRange(start, start.Add(time.Hour)),
		schedulingDomain.MeetingStatusScheduled,
	)
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	userID := uuid.New()
	stub := &stubSource{meetings: []schedulingDomain.Meeting{externalMeeting(userID, "caldav", "a", 9)}}
	source := application.NewBreakerSource("caldav", stub, application.BreakerConfig{}, testLogger())

	meetings, err := source.ListMeetings(context.Background(), userID, windowStart, windowStart.Add(24*time.Hour))

	require.NoError(t, err)
	assert.Len(t, meetings, 1)
	assert.Equal(t, "caldav", source.Name())
	assert.Equal(t, gobreaker.StateClosed, source.State())
}

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	errBoom := errors.New("connection refused")
	stub := &stubSource{err: errBoom}
	source := application.NewBreakerSource("google", stub, application.BreakerConfig{
		FailureThreshold: 2,
		Timeout:          time.Minute,
	}, testLogger())
	ctx := context.Background()
	end := windowStart.Add(24 * time.Hour)

	for i := 0; i < 2; i++ {
		_, err := source.ListMeetings(ctx, uuid.New(), windowStart, end)
		require.ErrorIs(t, err, errBoom)
		assert.NotErrorIs(t, err, application.ErrProviderUnavailable)
	}

	_, err := source.ListMeetings(ctx, uuid.New(), windowStart, end)

	require.ErrorIs(t, err, application.ErrProviderUnavailable)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, gobreaker.StateOpen, source.State())
}

func TestBreakerSource_CancellationDoesNotTrip(t *testing.T) {
	stub := &stubSource{err: context.Canceled}
	source := application.NewBreakerSource("caldav", stub, application.BreakerConfig{FailureThreshold: 1}, testLogger())

	for i := 0; i < 3; i++ {
		_, err := source.ListMeetings(context.Background(), uuid.New(), windowStart, windowStart.Add(time.Hour))
		require.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, 3, stub.calls)
	assert.Equal(t, gobreaker.StateClosed, source.State())
}

func TestCompositeSource_MergesAndSkipsFailures(t *testing.T) {
	userID := uuid.New()
	shared := externalMeeting(userID, "caldav", "shared", 9)
	first := &stubSource{meetings: []schedulingDomain.Meeting{shared, externalMeeting(userID, "caldav", "b", 11)}}
	failing := &stubSource{err: errors.New("timeout")}
	second := &stubSource{meetings: []schedulingDomain.Meeting{shared, externalMeeting(userID, "google", "c", 14)}}

	metrics := observability.NewInMemoryMetrics()
	composite := application.NewCompositeSource(testLogger(),
		application.NamedSource{Name: "caldav", Source: first},
		application.NamedSource{Name: "broken", Source: failing},
		application.NamedSource{Name: "google", Source: second},
	).WithMetrics(metrics)

	meetings, err := composite.ListMeetings(context.Background(), userID, windowStart, windowStart.Add(24*time.Hour))

	require.NoError(t, err)
	require.Len(t, meetings, 3)
	assert.Equal(t, "Sync shared", meetings[0].Title())
	assert.Equal(t, "Sync b", meetings[1].Title())
	assert.Equal(t, "Sync c", meetings[2].Title())
	assert.Equal(t, 3, composite.Len())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCalendarFetchErrors, observability.T("provider", "broken")))
}

func TestCompositeSource_CircuitStates(t *testing.T) {
	guarded := application.NewBreakerSource("caldav", &stubSource{}, application.BreakerConfig{}, testLogger())
	composite := application.NewCompositeSource(testLogger(),
		application.NamedSource{Name: "caldav", Source: guarded},
		application.NamedSource{Name: "raw", Source: &stubSource{}},
	)

	assert.Equal(t, map[string]string{"caldav": "closed"}, composite.CircuitStates())
}

func TestCompositeSource_Empty(t *testing.T) {
	composite := application.NewCompositeSource(nil)

	meetings, err := composite.ListMeetings(context.Background(), uuid.New(), windowStart, windowStart.Add(time.Hour))

	require.NoError(t, err)
	assert.Empty(t, meetings)
}
