package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulingResultDTO(t *testing.T) {
	userID := uuid.New()
	stored, err := domain.NewMeeting(userID, "1:1", domain.MustNewTimeRange(at(11, 10, 0), at(11, 11, 0)), testNow)
	require.NoError(t, err)

	repo := &fakeMeetingRepo{meetings: []domain.Meeting{stored}}
	result, err := newHandler(repo, &recordingPublisher{}).Handle(context.Background(),
		SuggestMeetingTimesQuery{UserID: userID, Request: tuesdayRequest()})
	require.NoError(t, err)

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	dto := NewSchedulingResultDTO(result, berlin)

	require.Len(t, dto.Suggestions, len(result.Suggestions))
	require.NotNil(t, dto.Best)
	assert.True(t, dto.Best.Start.Equal(result.BestSuggestion.TimeSlot.Start()))
	assert.Equal(t, berlin, dto.Best.Start.Location())
	assert.NotNil(t, dto.Best.Conflicts)
	assert.Equal(t, 1, dto.MeetingsConsidered)
	assert.Len(t, dto.Conflicts, len(result.Conflicts))
	assert.Equal(t, result.Summary, dto.Summary)
}

func TestNewSchedulingResultDTO_InvalidRequest(t *testing.T) {
	result, err := newHandler(&fakeMeetingRepo{}, &recordingPublisher{}).Handle(context.Background(),
		SuggestMeetingTimesQuery{UserID: uuid.New(), Request: domain.NewSchedulingRequest("", 0)})
	require.NoError(t, err)

	dto := NewSchedulingResultDTO(result, nil)

	assert.Empty(t, dto.Suggestions)
	assert.Nil(t, dto.Best)
	assert.Contains(t, dto.ValidationErrors, "Meeting title is required")
}
