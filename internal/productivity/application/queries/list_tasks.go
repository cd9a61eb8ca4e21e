package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	"github.com/google/uuid"
)

// Status filters accepted by ListTasksQuery besides the task statuses.
const (
	StatusFilterActive = "active"
	StatusFilterAll    = "all"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID    uuid.UUID
	Status    string // "active" (default), "all", or a task status
	Priority  string
	Overdue   bool
	SortBy    string // "priority" (default), "due_date", "created_at", "urgency"
	SortOrder string // "desc" (default), "asc"
	Limit     int
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	clock    sharedApplication.Clock
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository, clock sharedApplication.Clock) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, clock: clock.OrSystem()}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	statusFilter := strings.ToLower(strings.TrimSpace(query.Status))
	if statusFilter == "" {
		statusFilter = StatusFilterActive
	}

	var (
		tasks []*task.Task
		err   error
	)
	if statusFilter == StatusFilterActive {
		tasks, err = h.taskRepo.FindActive(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	if statusFilter != StatusFilterActive && statusFilter != StatusFilterAll {
		status, err := value_objects.ParseStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		tasks = filterTasks(tasks, func(t *task.Task) bool { return t.Status() == status })
	}

	if query.Priority != "" {
		priority, err := value_objects.ParsePriority(query.Priority)
		if err != nil {
			return nil, err
		}
		tasks = filterTasks(tasks, func(t *task.Task) bool { return t.Priority() == priority })
	}

	now := h.clock()
	if query.Overdue {
		tasks = filterTasks(tasks, func(t *task.Task) bool { return t.IsOverdue(now) })
	}

	sortTasks(tasks, query.SortBy, query.SortOrder, now)

	if query.Limit > 0 && len(tasks) > query.Limit {
		tasks = tasks[:query.Limit]
	}

	return toTaskDTOs(tasks, now), nil
}

func filterTasks(tasks []*task.Task, keep func(*task.Task) bool) []*task.Task {
	filtered := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// sortTasks orders tasks in place. Tasks without a due date sort last
// regardless of order when sorting by due date.
func sortTasks(tasks []*task.Task, sortBy, sortOrder string, now time.Time) {
	desc := sortOrder != "asc"

	var less func(a, b *task.Task) bool
	switch sortBy {
	case "due_date":
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate(), tasks[j].DueDate()
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			case desc:
				return di.After(*dj)
			default:
				return di.Before(*dj)
			}
		})
		return
	case "created_at":
		less = func(a, b *task.Task) bool { return a.CreatedAt().Before(b.CreatedAt()) }
	case "urgency":
		less = func(a, b *task.Task) bool { return a.UrgencyScore(now) < b.UrgencyScore(now) }
	default:
		less = func(a, b *task.Task) bool { return a.Priority().Weight() < b.Priority().Weight() }
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}
