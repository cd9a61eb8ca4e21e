package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// ErrOptimisticLocking is returned when a task changed since it was loaded.
var ErrOptimisticLocking = errors.New("optimistic locking conflict")

// taskRow is the driver-neutral stored form of a task.
type taskRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Title            string
	Description      string
	Status           string
	Priority         string
	EstimatedMinutes *int64
	DueDate          *time.Time
	CompletedAt      *time.Time
	DependencyIDs    []uuid.UUID
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func rowFromTask(t *task.Task) taskRow {
	row := taskRow{
		ID:            t.ID(),
		UserID:        t.UserID(),
		Title:         t.Title(),
		Description:   t.Description(),
		Status:        t.Status().String(),
		Priority:      t.Priority().String(),
		DueDate:       t.DueDate(),
		CompletedAt:   t.CompletedAt(),
		DependencyIDs: t.DependencyIDs(),
		Version:       t.Version(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
	if estimate, ok := t.EstimatedDuration(); ok {
		minutes := int64(estimate.Minutes())
		row.EstimatedMinutes = &minutes
	}
	return row
}

func (row taskRow) toTask() (*task.Task, error) {
	status, err := value_objects.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", row.ID, err)
	}
	priority, err := value_objects.ParsePriority(row.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", row.ID, err)
	}

	var estimate *value_objects.Duration
	if row.EstimatedMinutes != nil {
		d, err := value_objects.DurationFromMinutes(int(*row.EstimatedMinutes))
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", row.ID, err)
		}
		estimate = &d
	}

	return task.RehydrateTask(
		row.ID,
		row.UserID,
		row.Title,
		row.Description,
		status,
		priority,
		estimate,
		row.DueDate,
		row.CompletedAt,
		row.DependencyIDs,
		row.CreatedAt,
		row.UpdatedAt,
		row.Version,
	), nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency id %q: %w", v, err)
		}
		out = append(out, id)
	}
	return out, nil
}
