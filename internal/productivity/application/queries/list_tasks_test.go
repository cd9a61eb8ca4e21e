package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func titles(dtos []TaskDTO) []string {
	out := make([]string, len(dtos))
	for i, d := range dtos {
		out[i] = d.Title
	}
	return out
}

func TestListTasksHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("lists active tasks by priority by default", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Low", withPriority(value_objects.PriorityLow)),
			createTestTask(t, userID, "Urgent", withPriority(value_objects.PriorityUrgent)),
			createTestTask(t, userID, "Medium"),
		}
		repo.On("FindActive", mock.Anything, userID).Return(tasks, nil)

		result, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, []string{"Urgent", "Medium", "Low"}, titles(result))
		repo.AssertExpectations(t)
	})

	t.Run("filters by task status", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Open"),
			createTestTask(t, userID, "Done", completed()),
		}
		repo.On("FindByUserID", mock.Anything, userID).Return(tasks, nil)

		result, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Status: "completed"})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Done", result[0].Title)
		assert.NotNil(t, result[0].CompletedAt)
	})

	t.Run("all includes every status", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Open"),
			createTestTask(t, userID, "Done", completed()),
		}
		repo.On("FindByUserID", mock.Anything, userID).Return(tasks, nil)

		result, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Status: "all"})

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)
		repo.On("FindByUserID", mock.Anything, userID).Return([]*task.Task{}, nil)

		_, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Status: "archived"})

		assert.ErrorIs(t, err, value_objects.ErrInvalidStatus)
	})

	t.Run("filters by priority and overdue", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Late high", withPriority(value_objects.PriorityHigh), withDue(testNow.Add(-2*time.Hour))),
			createTestTask(t, userID, "Future high", withPriority(value_objects.PriorityHigh), withDue(testNow.AddDate(0, 0, 3))),
			createTestTask(t, userID, "Late low", withPriority(value_objects.PriorityLow), withDue(testNow.AddDate(0, 0, -1))),
		}
		repo.On("FindActive", mock.Anything, userID).Return(tasks, nil)

		result, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Priority: "high", Overdue: true})

		require.NoError(t, err)
		assert.Equal(t, []string{"Late high"}, titles(result))
		assert.True(t, result[0].IsOverdue)
	})

	t.Run("sorts by due date with undated tasks last", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Undated"),
			createTestTask(t, userID, "Friday", withDue(testNow.AddDate(0, 0, 2))),
			createTestTask(t, userID, "Tomorrow", withDue(testNow.AddDate(0, 0, 1))),
		}
		repo.On("FindActive", mock.Anything, userID).Return(tasks, nil)

		asc, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, SortBy: "due_date", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Tomorrow", "Friday", "Undated"}, titles(asc))

		desc, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, SortBy: "due_date"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Friday", "Tomorrow", "Undated"}, titles(desc))
	})

	t.Run("sorts by urgency and applies limit", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)

		tasks := []*task.Task{
			createTestTask(t, userID, "Calm", withPriority(value_objects.PriorityLow)),
			createTestTask(t, userID, "Burning", withDue(testNow.Add(time.Hour))),
			createTestTask(t, userID, "Busy", started()),
		}
		repo.On("FindActive", mock.Anything, userID).Return(tasks, nil)

		result, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, SortBy: "urgency", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, []string{"Burning", "Busy"}, titles(result))
		assert.Equal(t, 80, result[0].UrgencyScore)
		assert.Equal(t, 70, result[1].UrgencyScore)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandler(repo, fixedClock)
		repoErr := errors.New("database error")
		repo.On("FindActive", mock.Anything, userID).Return(nil, repoErr)

		_, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID})

		assert.ErrorIs(t, err, repoErr)
	})
}
