package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredTask(t *testing.T, userID uuid.UUID) *task.Task {
	t.Helper()
	tsk, err := task.NewTask(userID, "Prepare offsite agenda")
	require.NoError(t, err)
	tsk.PullDomainEvents()
	return tsk
}

func TestParseStatusAction(t *testing.T) {
	for input, want := range map[string]StatusAction{
		"start":    ActionStart,
		"Complete": ActionComplete,
		"done":     ActionComplete,
		" cancel ": ActionCancel,
	} {
		got, err := ParseStatusAction(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatusAction("archive")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestUpdateTaskStatusHandler_Handle(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("completes task with clock time", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		audit, pub := newAuditTrail()
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, audit, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		tsk := newStoredTask(t, userID)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, tsk.ID()).Return(tsk, nil)
		taskRepo.On("Save", txCtx, tsk).Return(nil)

		result, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: tsk.ID(), UserID: userID, Action: ActionComplete})

		require.NoError(t, err)
		assert.Equal(t, "completed", result.Status)
		require.NotNil(t, result.CompletedAt)
		assert.Equal(t, now, *result.CompletedAt)
		assert.Equal(t, []string{task.RoutingKeyCompleted}, pub.keys)
		taskRepo.AssertExpectations(t)
	})

	t.Run("starts task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, nil, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		tsk := newStoredTask(t, userID)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, tsk.ID()).Return(tsk, nil)
		taskRepo.On("Save", txCtx, tsk).Return(nil)

		result, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: tsk.ID(), UserID: userID, Action: ActionStart})

		require.NoError(t, err)
		assert.Equal(t, "in-progress", result.Status)
		assert.Nil(t, result.CompletedAt)
		require.Len(t, result.Events, 1)
		assert.Equal(t, task.RoutingKeyStarted, result.Events[0].RoutingKey())
	})

	t.Run("cannot complete a cancelled task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, nil, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		tsk := newStoredTask(t, userID)
		require.NoError(t, tsk.Cancel())

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, tsk.ID()).Return(tsk, nil)

		_, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: tsk.ID(), UserID: userID, Action: ActionComplete})

		assert.ErrorIs(t, err, task.ErrTaskCancelled)
		taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("hides tasks owned by other users", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, nil, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		tsk := newStoredTask(t, uuid.New())

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, tsk.ID()).Return(tsk, nil)

		_, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: tsk.ID(), UserID: userID, Action: ActionStart})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, nil, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		tsk := newStoredTask(t, userID)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, tsk.ID()).Return(tsk, nil)

		_, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: tsk.ID(), UserID: userID, Action: "archive"})

		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("propagates not found", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpdateTaskStatusHandler(taskRepo, uow, nil, clock)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "transaction")
		id := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, id).Return(nil, task.ErrTaskNotFound)

		_, err := handler.Handle(ctx, UpdateTaskStatusCommand{TaskID: id, UserID: userID, Action: ActionStart})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}
