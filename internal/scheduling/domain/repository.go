package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMeetingNotFound = errors.New("meeting not found")

// MeetingRepository stores locally recorded meeting snapshots.
type MeetingRepository interface {
	Save(ctx context.Context, meeting Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (Meeting, error)
	// FindInRange returns the user's meetings overlapping [start, end),
	// ordered by start time.
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Meeting, error)
}
