package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeeting(t *testing.T) {
	userID := uuid.New()

	m, err := domain.NewMeeting(userID, "  Weekly sync ", span(10, 0, 10, 30), clock(8, 0))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID())
	assert.Equal(t, "Weekly sync", m.Title())
	assert.Equal(t, domain.MeetingStatusScheduled, m.Status())
	assert.Equal(t, domain.SourceLocal, m.Source())
	assert.True(t, m.BlocksTime())

	_, err = domain.NewMeeting(userID, " ", span(10, 0, 10, 30), clock(8, 0))
	assert.ErrorIs(t, err, domain.ErrEmptyMeetingTitle)

	_, err = domain.NewMeeting(userID, "No range", domain.TimeRange{}, clock(8, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestMeeting_WithStatusReturnsNewSnapshot(t *testing.T) {
	m, err := domain.NewMeeting(uuid.New(), "Offsite prep", span(14, 0, 15, 0), clock(8, 0))
	require.NoError(t, err)

	cancelled := m.WithStatus(domain.MeetingStatusCancelled, clock(9, 0))

	assert.Equal(t, domain.MeetingStatusScheduled, m.Status())
	assert.Equal(t, domain.MeetingStatusCancelled, cancelled.Status())
	assert.Equal(t, m.ID(), cancelled.ID())
	assert.True(t, cancelled.DateRange().Equal(m.DateRange()))
	assert.False(t, cancelled.BlocksTime())
}

func TestNewExternalMeeting_StableIdentity(t *testing.T) {
	userID := uuid.New()
	a := domain.NewExternalMeeting(userID, domain.SourceGoogle, "evt-1", "Board", span(9, 0, 10, 0), domain.MeetingStatusScheduled)
	b := domain.NewExternalMeeting(userID, domain.SourceGoogle, "evt-1", "Board", span(9, 0, 10, 0), domain.MeetingStatusScheduled)
	c := domain.NewExternalMeeting(userID, domain.SourceCalDAV, "evt-1", "Board", span(9, 0, 10, 0), domain.MeetingStatusScheduled)

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
}

func TestParseMeetingStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.MeetingStatus
		blocks   bool
	}{
		{"scheduled", domain.MeetingStatusScheduled, true},
		{"confirmed", domain.MeetingStatusScheduled, true},
		{"in_progress", domain.MeetingStatusInProgress, true},
		{"completed", domain.MeetingStatusCompleted, false},
		{"canceled", domain.MeetingStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := domain.ParseMeetingStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
			assert.Equal(t, tt.blocks, s.BlocksTime())
		})
	}

	_, err := domain.ParseMeetingStatus("postponed")
	assert.ErrorIs(t, err, domain.ErrInvalidMeetingState)
}
