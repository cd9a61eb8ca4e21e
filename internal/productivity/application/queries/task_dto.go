package queries

import (
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks. Overdue and urgency are
// evaluated at the time the DTO is built.
type TaskDTO struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Status          string      `json:"status"`
	Priority        string      `json:"priority"`
	DurationMinutes *int        `json:"estimated_minutes,omitempty"`
	DueDate         *time.Time  `json:"due_date,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	DependencyIDs   []uuid.UUID `json:"dependency_ids,omitempty"`
	IsOverdue       bool        `json:"is_overdue"`
	UrgencyScore    int         `json:"urgency_score"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewTaskDTO builds a DTO evaluated at now.
func NewTaskDTO(t *task.Task, now time.Time) TaskDTO {
	dto := TaskDTO{
		ID:            t.ID(),
		Title:         t.Title(),
		Description:   t.Description(),
		Status:        t.Status().String(),
		Priority:      t.Priority().String(),
		DueDate:       t.DueDate(),
		CompletedAt:   t.CompletedAt(),
		DependencyIDs: t.DependencyIDs(),
		IsOverdue:     t.IsOverdue(now),
		UrgencyScore:  t.UrgencyScore(now),
		CreatedAt:     t.CreatedAt(),
	}
	if estimate, ok := t.EstimatedDuration(); ok {
		minutes := estimate.Minutes()
		dto.DurationMinutes = &minutes
	}
	return dto
}

func toTaskDTOs(tasks []*task.Task, now time.Time) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = NewTaskDTO(t, now)
	}
	return dtos
}
