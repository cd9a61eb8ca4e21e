package task

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrTaskCancelled       = errors.New("task is cancelled")
	ErrSelfDependency      = errors.New("task cannot depend on itself")
)

// Task represents a unit of work to be done.
type Task struct {
	domain.BaseAggregateRoot
	userID        uuid.UUID
	title         string
	description   string
	status        value_objects.Status
	priority      value_objects.Priority
	estimate      *value_objects.Duration
	dueDate       *time.Time
	completedAt   *time.Time
	dependencyIDs []uuid.UUID
}

// NewTask creates a new pending task with medium priority.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		status:            value_objects.StatusPending,
		priority:          value_objects.PriorityMedium,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title, t.priority.String()))

	return t, nil
}

// RehydrateTask recreates a task from persisted state without emitting events.
func RehydrateTask(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	description string,
	status value_objects.Status,
	priority value_objects.Priority,
	estimate *value_objects.Duration,
	dueDate *time.Time,
	completedAt *time.Time,
	dependencyIDs []uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) *Task {
	baseEntity := domain.RehydrateBaseEntity(id, createdAt, updatedAt)

	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(baseEntity, version),
		userID:            userID,
		title:             title,
		description:       description,
		status:            status,
		priority:          priority,
		estimate:          estimate,
		dueDate:           dueDate,
		completedAt:       completedAt,
		dependencyIDs:     append([]uuid.UUID(nil), dependencyIDs...),
	}
}

func (t *Task) UserID() uuid.UUID                { return t.userID }
func (t *Task) Title() string                    { return t.title }
func (t *Task) Description() string              { return t.description }
func (t *Task) Status() value_objects.Status     { return t.status }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) DueDate() *time.Time              { return t.dueDate }
func (t *Task) CompletedAt() *time.Time          { return t.completedAt }
func (t *Task) IsCompleted() bool                { return t.status.IsCompleted() }
func (t *Task) IsActive() bool                   { return t.status.IsActive() }

// EstimatedDuration returns the effort estimate and whether one is set.
func (t *Task) EstimatedDuration() (value_objects.Duration, bool) {
	if t.estimate == nil {
		return value_objects.Zero(), false
	}
	return *t.estimate, true
}

// DependencyIDs returns a copy of the tasks this task depends on.
func (t *Task) DependencyIDs() []uuid.UUID {
	return append([]uuid.UUID(nil), t.dependencyIDs...)
}

// DependencyCount returns the number of dependencies.
func (t *Task) DependencyCount() int {
	return len(t.dependencyIDs)
}

// IsOverdue reports whether the task has a due date strictly before now and
// is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.dueDate == nil || t.IsCompleted() {
		return false
	}
	return t.dueDate.Before(now)
}

// UrgencyScore derives a 0-100 urgency from priority, due date proximity and
// status. It is recomputed on every call and never stored.
func (t *Task) UrgencyScore(now time.Time) int {
	score := t.priority.Weight() * 25

	if t.dueDate != nil && !t.IsCompleted() {
		daysUntilDue := DaysUntil(*t.dueDate, now)
		switch {
		case daysUntilDue <= 0:
			score += 50
		case daysUntilDue <= 1:
			score += 30
		case daysUntilDue <= 3:
			score += 15
		case daysUntilDue <= 7:
			score += 5
		}
	}

	if t.status == value_objects.StatusInProgress {
		score += 20
	}

	return clamp(score, 0, 100)
}

// DaysUntil counts the days from now to due, rounding a partial day up.
// A due date less than a day in the past counts as zero.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
	t.Touch()
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(priority value_objects.Priority) error {
	if !priority.IsValid() {
		return value_objects.ErrInvalidPriority
	}
	if priority == t.priority {
		return nil
	}
	previous := t.priority
	t.priority = priority
	t.Touch()
	t.AddDomainEvent(NewTaskPriorityChanged(t.ID(), previous.String(), priority.String()))
	return nil
}

// SetEstimatedDuration sets the effort estimate.
func (t *Task) SetEstimatedDuration(estimate value_objects.Duration) {
	t.estimate = &estimate
	t.Touch()
}

// SetDueDate updates the due date. A nil value clears it.
func (t *Task) SetDueDate(dueDate *time.Time) {
	if dueDate != nil {
		d := dueDate.UTC()
		dueDate = &d
	}
	t.dueDate = dueDate
	t.Touch()
}

// AddDependency records that this task depends on another one. Adding the
// same dependency twice is a no-op.
func (t *Task) AddDependency(id uuid.UUID) error {
	if id == t.ID() {
		return ErrSelfDependency
	}
	for _, existing := range t.dependencyIDs {
		if existing == id {
			return nil
		}
	}
	t.dependencyIDs = append(t.dependencyIDs, id)
	t.Touch()
	return nil
}

// Start marks the task as in progress.
func (t *Task) Start() error {
	switch t.status {
	case value_objects.StatusCompleted:
		return ErrTaskAlreadyComplete
	case value_objects.StatusCancelled:
		return ErrTaskCancelled
	case value_objects.StatusInProgress:
		return nil
	}
	t.status = value_objects.StatusInProgress
	t.Touch()
	t.AddDomainEvent(NewTaskStarted(t.ID()))
	return nil
}

// Complete marks the task as completed at the given time.
func (t *Task) Complete(at time.Time) error {
	switch t.status {
	case value_objects.StatusCompleted:
		return ErrTaskAlreadyComplete
	case value_objects.StatusCancelled:
		return ErrTaskCancelled
	}

	completedAt := at.UTC()
	t.status = value_objects.StatusCompleted
	t.completedAt = &completedAt
	t.Touch()

	t.AddDomainEvent(NewTaskCompleted(t.ID()))

	return nil
}

// Cancel marks the task as cancelled.
func (t *Task) Cancel() error {
	switch t.status {
	case value_objects.StatusCompleted:
		return ErrTaskAlreadyComplete
	case value_objects.StatusCancelled:
		return nil
	}

	t.status = value_objects.StatusCancelled
	t.Touch()

	t.AddDomainEvent(NewTaskCancelled(t.ID()))

	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
