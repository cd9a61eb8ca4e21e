package queries

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// AdvisePrioritiesQuery asks for priority adjustments on active tasks.
type AdvisePrioritiesQuery struct {
	UserID uuid.UUID
}

// AdvisePrioritiesResult lists the suggested adjustments. Tasks whose
// priority already fits their urgency are omitted.
type AdvisePrioritiesResult struct {
	Adjustments []services.PriorityAdjustment
	Events      []sharedDomain.DomainEvent
}

// AdvisePrioritiesHandler handles the AdvisePrioritiesQuery.
type AdvisePrioritiesHandler struct {
	taskRepo task.Repository
	advisor  *services.PriorityAdvisor
	audit    *eventbus.AuditTrail
	clock    sharedApplication.Clock
}

// NewAdvisePrioritiesHandler creates a new AdvisePrioritiesHandler.
func NewAdvisePrioritiesHandler(taskRepo task.Repository, audit *eventbus.AuditTrail, clock sharedApplication.Clock) *AdvisePrioritiesHandler {
	return &AdvisePrioritiesHandler{
		taskRepo: taskRepo,
		advisor:  services.NewPriorityAdvisor(),
		audit:    audit,
		clock:    clock.OrSystem(),
	}
}

// Handle executes the AdvisePrioritiesQuery.
func (h *AdvisePrioritiesHandler) Handle(ctx context.Context, query AdvisePrioritiesQuery) (*AdvisePrioritiesResult, error) {
	tasks, err := h.taskRepo.FindActive(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	adjustments := h.advisor.Advise(tasks, h.clock())

	events := make([]sharedDomain.DomainEvent, 0, len(adjustments))
	for _, adj := range adjustments {
		events = append(events, task.NewPriorityAdjustmentSuggested(
			adj.Task.ID(),
			adj.CurrentPriority.String(),
			adj.SuggestedPriority.String(),
			adj.Reason,
		))
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, query.UserID))
	h.audit.Record(ctx, events...)

	return &AdvisePrioritiesResult{Adjustments: adjustments, Events: events}, nil
}
