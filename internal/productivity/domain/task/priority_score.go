package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PriorityScore is the stored outcome of a prioritization run for one task.
type PriorityScore struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TaskID         uuid.UUID
	Score          int
	Recommendation string
	Explanation    string
	UpdatedAt      time.Time
}

// PriorityScoreRepository defines persistence for priority scores.
type PriorityScoreRepository interface {
	Save(ctx context.Context, score PriorityScore) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]PriorityScore, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
