package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

var ErrUnknownDependency = errors.New("dependency task not found")

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Priority        string
	DurationMinutes int
	DueDate         *time.Time
	DependencyIDs   []uuid.UUID
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
	Events []sharedDomain.DomainEvent
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo task.Repository
	uow      sharedApplication.UnitOfWork
	audit    *eventbus.AuditTrail
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, audit *eventbus.AuditTrail) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo: taskRepo,
		uow:      uow,
		audit:    audit,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	var result *CreateTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := task.NewTask(cmd.UserID, cmd.Title)
		if err != nil {
			return err
		}

		if cmd.Description != "" {
			t.SetDescription(cmd.Description)
		}

		if cmd.Priority != "" {
			priority, err := value_objects.ParsePriority(cmd.Priority)
			if err != nil {
				return err
			}
			if err := t.SetPriority(priority); err != nil {
				return err
			}
		}

		if cmd.DurationMinutes != 0 {
			estimate, err := value_objects.DurationFromMinutes(cmd.DurationMinutes)
			if err != nil {
				return err
			}
			t.SetEstimatedDuration(estimate)
		}

		if cmd.DueDate != nil {
			t.SetDueDate(cmd.DueDate)
		}

		for _, depID := range cmd.DependencyIDs {
			dep, err := h.taskRepo.FindByID(txCtx, depID)
			if err != nil {
				if errors.Is(err, task.ErrTaskNotFound) {
					return fmt.Errorf("%w: %s", ErrUnknownDependency, depID)
				}
				return err
			}
			if dep.UserID() != cmd.UserID {
				return fmt.Errorf("%w: %s", ErrUnknownDependency, depID)
			}
			if err := t.AddDependency(depID); err != nil {
				return err
			}
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events := t.PullDomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, cmd.UserID))

		result = &CreateTaskResult{TaskID: t.ID(), Events: events}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.audit.Record(ctx, result.Events...)

	return result, nil
}
