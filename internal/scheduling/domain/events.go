package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	MeetingAggregateType    = "Meeting"
	SchedulingAggregateType = "Scheduling"

	RoutingKeyMeetingRecorded      = "scheduling.meeting.recorded"
	RoutingKeyMeetingCancelled     = "scheduling.meeting.cancelled"
	RoutingKeySuggestionsGenerated = "scheduling.suggestions.generated"
)

// MeetingRecorded is emitted when a meeting snapshot is stored.
type MeetingRecorded struct {
	sharedDomain.BaseEvent
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// NewMeetingRecorded creates a MeetingRecorded event.
func NewMeetingRecorded(m Meeting) *MeetingRecorded {
	return &MeetingRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), MeetingAggregateType, RoutingKeyMeetingRecorded),
		Title:     m.Title(),
		StartTime: m.DateRange().Start(),
		EndTime:   m.DateRange().End(),
	}
}

// MeetingCancelled is emitted when a stored meeting is cancelled.
type MeetingCancelled struct {
	sharedDomain.BaseEvent
}

// NewMeetingCancelled creates a MeetingCancelled event.
func NewMeetingCancelled(meetingID uuid.UUID) *MeetingCancelled {
	return &MeetingCancelled{
		BaseEvent: sharedDomain.NewBaseEvent(meetingID, MeetingAggregateType, RoutingKeyMeetingCancelled),
	}
}

// SuggestionsGenerated records the outcome of a meeting time search. The
// aggregate is the requesting user.
type SuggestionsGenerated struct {
	sharedDomain.BaseEvent
	Title            string     `json:"title"`
	DurationMinutes  int        `json:"duration_minutes"`
	SuggestionCount  int        `json:"suggestion_count"`
	OptimalSlots     int        `json:"optimal_slots"`
	ConflictCount    int        `json:"conflict_count"`
	BestStart        *time.Time `json:"best_start,omitempty"`
	BestScore        int        `json:"best_score"`
	ValidationErrors []string   `json:"validation_errors,omitempty"`
}

// NewSuggestionsGenerated creates a SuggestionsGenerated event.
func NewSuggestionsGenerated(userID uuid.UUID, req SchedulingRequest, result SchedulingResult) *SuggestionsGenerated {
	event := &SuggestionsGenerated{
		BaseEvent:        sharedDomain.NewBaseEvent(userID, SchedulingAggregateType, RoutingKeySuggestionsGenerated),
		Title:            req.Title,
		DurationMinutes:  req.DurationMinutes,
		SuggestionCount:  result.Summary.TotalSuggestions,
		OptimalSlots:     result.Summary.OptimalSlots,
		ConflictCount:    result.Summary.ConflictCount,
		ValidationErrors: result.ValidationErrors,
	}
	if result.BestSuggestion != nil {
		start := result.BestSuggestion.TimeSlot.Start()
		event.BestStart = &start
		event.BestScore = result.BestSuggestion.Score
	}
	return event
}
