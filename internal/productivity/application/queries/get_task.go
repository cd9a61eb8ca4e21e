package queries

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	"github.com/google/uuid"
)

// GetTaskQuery contains the parameters for getting a single task.
type GetTaskQuery struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
	clock    sharedApplication.Clock
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository, clock sharedApplication.Clock) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo, clock: clock.OrSystem()}
}

// Handle executes the GetTaskQuery. Tasks owned by another user are
// reported as not found.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*TaskDTO, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.UserID() != query.UserID {
		return nil, task.ErrTaskNotFound
	}

	dto := NewTaskDTO(t, h.clock())
	return &dto, nil
}
