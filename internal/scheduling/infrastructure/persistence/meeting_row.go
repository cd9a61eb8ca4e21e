package persistence

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
)

type meetingRow struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Start      time.Time
	End        time.Time
	Status     string
	Source     string
	ExternalID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (row meetingRow) toMeeting() (domain.Meeting, error) {
	dateRange, err := domain.NewTimeRange(row.Start.UTC(), row.End.UTC())
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("meeting %s: %w", row.ID, err)
	}
	status, err := domain.ParseMeetingStatus(row.Status)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("meeting %s: %w", row.ID, err)
	}
	return domain.RehydrateMeeting(
		row.ID,
		row.UserID,
		row.Title,
		dateRange,
		status,
		row.Source,
		row.ExternalID,
		row.CreatedAt.UTC(),
		row.UpdatedAt.UTC(),
	), nil
}
