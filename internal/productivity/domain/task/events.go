package task

import (
	"github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated         = "productivity.task.created"
	RoutingKeyStarted         = "productivity.task.started"
	RoutingKeyCompleted       = "productivity.task.completed"
	RoutingKeyCancelled       = "productivity.task.cancelled"
	RoutingKeyPriorityChanged = "productivity.task.priority_changed"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title, priority string) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
		Priority:  priority,
	}
}

// TaskStarted is emitted when a task moves to in-progress.
type TaskStarted struct {
	domain.BaseEvent
}

// NewTaskStarted creates a TaskStarted event.
func NewTaskStarted(taskID uuid.UUID) *TaskStarted {
	return &TaskStarted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyStarted),
	}
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	domain.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted),
	}
}

// TaskCancelled is emitted when a task is cancelled.
type TaskCancelled struct {
	domain.BaseEvent
}

// NewTaskCancelled creates a TaskCancelled event.
func NewTaskCancelled(taskID uuid.UUID) *TaskCancelled {
	return &TaskCancelled{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCancelled),
	}
}

// TaskPriorityChanged is emitted when the priority of a task changes.
type TaskPriorityChanged struct {
	domain.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// NewTaskPriorityChanged creates a TaskPriorityChanged event.
func NewTaskPriorityChanged(taskID uuid.UUID, from, to string) *TaskPriorityChanged {
	return &TaskPriorityChanged{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyPriorityChanged),
		From:      from,
		To:        to,
	}
}

const (
	PrioritizationAggregateType = "Prioritization"

	RoutingKeyTasksPrioritized            = "productivity.tasks.prioritized"
	RoutingKeyPriorityAdjustmentSuggested = "productivity.priority.adjustment_suggested"
)

// TasksPrioritized records the outcome of one prioritization run. The
// aggregate is the user whose tasks were ranked.
type TasksPrioritized struct {
	domain.BaseEvent
	TaskCount   int         `json:"task_count"`
	CriticalIDs []uuid.UUID `json:"critical_ids"`
	EvaluatedAt string      `json:"evaluated_at"`
}

// NewTasksPrioritized creates a TasksPrioritized event.
func NewTasksPrioritized(userID uuid.UUID, taskCount int, criticalIDs []uuid.UUID, evaluatedAt string) *TasksPrioritized {
	return &TasksPrioritized{
		BaseEvent:   domain.NewBaseEvent(userID, PrioritizationAggregateType, RoutingKeyTasksPrioritized),
		TaskCount:   taskCount,
		CriticalIDs: criticalIDs,
		EvaluatedAt: evaluatedAt,
	}
}

// PriorityAdjustmentSuggested records one advisor suggestion.
type PriorityAdjustmentSuggested struct {
	domain.BaseEvent
	CurrentPriority   string `json:"current_priority"`
	SuggestedPriority string `json:"suggested_priority"`
	Reason            string `json:"reason"`
}

// NewPriorityAdjustmentSuggested creates a PriorityAdjustmentSuggested event.
func NewPriorityAdjustmentSuggested(taskID uuid.UUID, current, suggested, reason string) *PriorityAdjustmentSuggested {
	return &PriorityAdjustmentSuggested{
		BaseEvent:         domain.NewBaseEvent(taskID, AggregateType, RoutingKeyPriorityAdjustmentSuggested),
		CurrentPriority:   current,
		SuggestedPriority: suggested,
		Reason:            reason,
	}
}
