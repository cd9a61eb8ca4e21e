package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
)

// MeetingDTO is the read model of a meeting snapshot.
type MeetingDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	ExternalID string    `json:"external_id,omitempty"`
}

// NewMeetingDTO converts a meeting.
func NewMeetingDTO(m domain.Meeting) MeetingDTO {
	return MeetingDTO{
		ID:         m.ID(),
		Title:      m.Title(),
		Start:      m.DateRange().Start(),
		End:        m.DateRange().End(),
		Status:     string(m.Status()),
		Source:     m.Source(),
		ExternalID: m.ExternalID(),
	}
}

// ListMeetingsQuery lists stored meetings overlapping a period.
type ListMeetingsQuery struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
	// IncludeCancelled keeps cancelled and completed meetings.
	IncludeCancelled bool
}

// ListMeetingsHandler handles the ListMeetingsQuery.
type ListMeetingsHandler struct {
	meetingRepo domain.MeetingRepository
}

// NewListMeetingsHandler creates a new ListMeetingsHandler.
func NewListMeetingsHandler(meetingRepo domain.MeetingRepository) *ListMeetingsHandler {
	return &ListMeetingsHandler{meetingRepo: meetingRepo}
}

// Handle executes the ListMeetingsQuery.
func (h *ListMeetingsHandler) Handle(ctx context.Context, query ListMeetingsQuery) ([]MeetingDTO, error) {
	meetings, err := h.meetingRepo.FindInRange(ctx, query.UserID, query.Start, query.End)
	if err != nil {
		return nil, err
	}

	dtos := make([]MeetingDTO, 0, len(meetings))
	for _, m := range meetings {
		if !query.IncludeCancelled && !m.BlocksTime() {
			continue
		}
		dtos = append(dtos, NewMeetingDTO(m))
	}
	return dtos, nil
}
