package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// StatusAction is a lifecycle transition applied to a task.
type StatusAction string

const (
	ActionStart    StatusAction = "start"
	ActionComplete StatusAction = "complete"
	ActionCancel   StatusAction = "cancel"
)

var ErrUnknownAction = errors.New("unknown status action")

// ParseStatusAction parses a transition name.
func ParseStatusAction(s string) (StatusAction, error) {
	switch StatusAction(strings.ToLower(strings.TrimSpace(s))) {
	case ActionStart:
		return ActionStart, nil
	case ActionComplete, "done":
		return ActionComplete, nil
	case ActionCancel:
		return ActionCancel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// UpdateTaskStatusCommand contains the data needed to move a task through
// its lifecycle.
type UpdateTaskStatusCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Action StatusAction
}

// UpdateTaskStatusResult contains the task state after the transition.
type UpdateTaskStatusResult struct {
	TaskID      uuid.UUID
	Status      string
	CompletedAt *time.Time
	Events      []sharedDomain.DomainEvent
}

// UpdateTaskStatusHandler handles the UpdateTaskStatusCommand.
type UpdateTaskStatusHandler struct {
	taskRepo task.Repository
	uow      sharedApplication.UnitOfWork
	audit    *eventbus.AuditTrail
	clock    sharedApplication.Clock
}

// NewUpdateTaskStatusHandler creates a new UpdateTaskStatusHandler.
func NewUpdateTaskStatusHandler(
	taskRepo task.Repository,
	uow sharedApplication.UnitOfWork,
	audit *eventbus.AuditTrail,
	clock sharedApplication.Clock,
) *UpdateTaskStatusHandler {
	return &UpdateTaskStatusHandler{
		taskRepo: taskRepo,
		uow:      uow,
		audit:    audit,
		clock:    clock.OrSystem(),
	}
}

// Handle executes the UpdateTaskStatusCommand.
func (h *UpdateTaskStatusHandler) Handle(ctx context.Context, cmd UpdateTaskStatusCommand) (*UpdateTaskStatusResult, error) {
	var result *UpdateTaskStatusResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if t.UserID() != cmd.UserID {
			return task.ErrTaskNotFound
		}

		switch cmd.Action {
		case ActionStart:
			err = t.Start()
		case ActionComplete:
			err = t.Complete(h.clock())
		case ActionCancel:
			err = t.Cancel()
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
		}
		if err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events := t.PullDomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, cmd.UserID))

		result = &UpdateTaskStatusResult{
			TaskID:      t.ID(),
			Status:      t.Status().String(),
			CompletedAt: t.CompletedAt(),
			Events:      events,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.audit.Record(ctx, result.Events...)

	return result, nil
}
