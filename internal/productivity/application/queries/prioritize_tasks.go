package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// PrioritizeTasksQuery ranks a user's tasks.
type PrioritizeTasksQuery struct {
	UserID     uuid.UUID
	Criteria   services.PrioritizationCriteria
	ActiveOnly bool
}

// PrioritizeTasksResult is the ranked list plus the audit entry describing
// the run.
type PrioritizeTasksResult struct {
	services.PrioritizationResult
	Events []sharedDomain.DomainEvent
}

// PrioritizeTasksHandler handles the PrioritizeTasksQuery.
type PrioritizeTasksHandler struct {
	taskRepo task.Repository
	engine   *services.PriorityEngine
	audit    *eventbus.AuditTrail
	clock    sharedApplication.Clock
	logger   *slog.Logger
}

// NewPrioritizeTasksHandler creates a new PrioritizeTasksHandler.
func NewPrioritizeTasksHandler(
	taskRepo task.Repository,
	engine *services.PriorityEngine,
	audit *eventbus.AuditTrail,
	clock sharedApplication.Clock,
	logger *slog.Logger,
) *PrioritizeTasksHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(services.EngineOptions{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PrioritizeTasksHandler{
		taskRepo: taskRepo,
		engine:   engine,
		audit:    audit,
		clock:    clock.OrSystem(),
		logger:   logger,
	}
}

// Handle executes the PrioritizeTasksQuery.
func (h *PrioritizeTasksHandler) Handle(ctx context.Context, query PrioritizeTasksQuery) (*PrioritizeTasksResult, error) {
	var (
		tasks []*task.Task
		err   error
	)
	if query.ActiveOnly {
		tasks, err = h.taskRepo.FindActive(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	now := h.clock()
	ranked := h.engine.Prioritize(tasks, query.Criteria, now)

	criticalIDs := make([]uuid.UUID, 0)
	for _, pt := range ranked.PrioritizedTasks {
		if pt.Band == services.BandCritical {
			criticalIDs = append(criticalIDs, pt.Task.ID())
		}
	}

	event := task.NewTasksPrioritized(query.UserID, len(ranked.PrioritizedTasks), criticalIDs, now.Format(time.RFC3339))
	events := []sharedDomain.DomainEvent{event}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, query.UserID))
	h.audit.Record(ctx, events...)

	h.logger.DebugContext(ctx, "tasks prioritized",
		"user_id", query.UserID,
		"task_count", len(ranked.PrioritizedTasks),
		"critical", ranked.Summary.Critical,
		"overdue", ranked.Summary.Overdue,
	)

	return &PrioritizeTasksResult{PrioritizationResult: ranked, Events: events}, nil
}
