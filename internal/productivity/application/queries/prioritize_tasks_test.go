package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrioritizeTasksHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("ranks tasks and records the run", func(t *testing.T) {
		repo := new(mockTaskRepo)
		audit, pub := newAuditTrail()
		handler := NewPrioritizeTasksHandler(repo, nil, audit, fixedClock, discardLogger())

		// 30 + 25 + 16 + 12 + 8 = 91
		critical := createTestTask(t, userID, "Fix payroll export",
			withPriority(value_objects.PriorityUrgent),
			withDue(testNow.AddDate(0, 0, -2)),
			withEstimate(30),
			started(),
		)
		// 6 + 6.25 + 12 + 12 + 5 = 41.25
		low := createTestTask(t, userID, "Tidy shared drive", withPriority(value_objects.PriorityLow))
		repo.On("FindByUserID", mock.Anything, userID).Return([]*task.Task{low, critical}, nil)

		result, err := handler.Handle(context.Background(), PrioritizeTasksQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, result.PrioritizedTasks, 2)
		assert.Equal(t, critical.ID(), result.PrioritizedTasks[0].Task.ID())
		assert.Equal(t, 91, result.PrioritizedTasks[0].Score)
		assert.Equal(t, services.BandCritical, result.PrioritizedTasks[0].Band)
		assert.Equal(t, 41, result.PrioritizedTasks[1].Score)
		assert.Equal(t, testNow, result.EvaluatedAt)
		assert.Equal(t, 1, result.Summary.Overdue)

		require.Len(t, result.Events, 1)
		event, ok := result.Events[0].(*task.TasksPrioritized)
		require.True(t, ok)
		assert.Equal(t, 2, event.TaskCount)
		assert.Equal(t, []uuid.UUID{critical.ID()}, event.CriticalIDs)
		assert.Equal(t, "2024-06-12T09:00:00Z", event.EvaluatedAt)
		assert.Equal(t, userID, event.Metadata().UserID)
		assert.Equal(t, []string{task.RoutingKeyTasksPrioritized}, pub.keys)
	})

	t.Run("custom criteria change the ranking", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewPrioritizeTasksHandler(repo, nil, nil, fixedClock, nil)

		zero := 0.0
		one := 1.0
		quick := createTestTask(t, userID, "Quick reply", withEstimate(15))
		long := createTestTask(t, userID, "Long report", withPriority(value_objects.PriorityUrgent), withEstimate(600))
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{long, quick}, nil)

		result, err := handler.Handle(context.Background(), PrioritizeTasksQuery{
			UserID:     userID,
			ActiveOnly: true,
			Criteria: services.PrioritizationCriteria{
				DueDateWeight:           &zero,
				PriorityWeight:          &zero,
				StatusWeight:            &zero,
				DependencyWeight:        &zero,
				EstimatedDurationWeight: &one,
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Quick reply", result.PrioritizedTasks[0].Task.Title())
		assert.Equal(t, 80, result.PrioritizedTasks[0].Score)
		assert.Equal(t, 30, result.PrioritizedTasks[1].Score)
	})

	t.Run("empty task list yields empty result", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewPrioritizeTasksHandler(repo, nil, nil, fixedClock, nil)
		repo.On("FindByUserID", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), PrioritizeTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.Empty(t, result.PrioritizedTasks)
		assert.Zero(t, result.Summary.Total)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewPrioritizeTasksHandler(repo, nil, nil, fixedClock, nil)
		repoErr := errors.New("database error")
		repo.On("FindByUserID", mock.Anything, userID).Return(nil, repoErr)

		_, err := handler.Handle(context.Background(), PrioritizeTasksQuery{UserID: userID})

		assert.ErrorIs(t, err, repoErr)
	})
}
