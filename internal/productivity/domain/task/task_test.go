package task_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func newTask(t *testing.T, priority value_objects.Priority, due *time.Time) *task.Task {
	t.Helper()
	tsk, err := task.NewTask(uuid.New(), "Prepare board deck")
	require.NoError(t, err)
	require.NoError(t, tsk.SetPriority(priority))
	tsk.SetDueDate(due)
	return tsk
}

func at(d time.Duration) *time.Time {
	ts := now.Add(d)
	return &ts
}

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	tsk, err := task.NewTask(userID, "  Review contract  ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tsk.ID())
	assert.Equal(t, userID, tsk.UserID())
	assert.Equal(t, "Review contract", tsk.Title())
	assert.Equal(t, value_objects.StatusPending, tsk.Status())
	assert.Equal(t, value_objects.PriorityMedium, tsk.Priority())
	assert.Nil(t, tsk.DueDate())
	_, hasEstimate := tsk.EstimatedDuration()
	assert.False(t, hasEstimate)

	events := tsk.DomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*task.TaskCreated)
	require.True(t, ok)
	assert.Equal(t, task.RoutingKeyCreated, created.RoutingKey())
	assert.Equal(t, "medium", created.Priority)
}

func TestNewTask_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := task.NewTask(uuid.New(), title)
		assert.ErrorIs(t, err, task.ErrEmptyTitle)
	}
}

func TestTask_Lifecycle(t *testing.T) {
	t.Run("start then complete records completion time", func(t *testing.T) {
		tsk := newTask(t, value_objects.PriorityHigh, nil)

		require.NoError(t, tsk.Start())
		require.NoError(t, tsk.Start())
		assert.Equal(t, value_objects.StatusInProgress, tsk.Status())

		require.NoError(t, tsk.Complete(now))
		assert.True(t, tsk.IsCompleted())
		require.NotNil(t, tsk.CompletedAt())
		assert.Equal(t, now, *tsk.CompletedAt())

		assert.ErrorIs(t, tsk.Complete(now), task.ErrTaskAlreadyComplete)
		assert.ErrorIs(t, tsk.Start(), task.ErrTaskAlreadyComplete)
		assert.ErrorIs(t, tsk.Cancel(), task.ErrTaskAlreadyComplete)
	})

	t.Run("cancelled task cannot be started or completed", func(t *testing.T) {
		tsk := newTask(t, value_objects.PriorityLow, nil)

		require.NoError(t, tsk.Cancel())
		require.NoError(t, tsk.Cancel())
		assert.False(t, tsk.IsActive())
		assert.ErrorIs(t, tsk.Start(), task.ErrTaskCancelled)
		assert.ErrorIs(t, tsk.Complete(now), task.ErrTaskCancelled)
	})
}

func TestTask_SetPriority(t *testing.T) {
	tsk := newTask(t, value_objects.PriorityMedium, nil)
	tsk.ClearDomainEvents()

	assert.ErrorIs(t, tsk.SetPriority(value_objects.Priority(0)), value_objects.ErrInvalidPriority)
	require.NoError(t, tsk.SetPriority(value_objects.PriorityMedium))
	assert.Empty(t, tsk.DomainEvents())

	require.NoError(t, tsk.SetPriority(value_objects.PriorityUrgent))
	require.Len(t, tsk.DomainEvents(), 1)
	changed := tsk.DomainEvents()[0].(*task.TaskPriorityChanged)
	assert.Equal(t, "medium", changed.From)
	assert.Equal(t, "urgent", changed.To)
}

func TestTask_Dependencies(t *testing.T) {
	tsk := newTask(t, value_objects.PriorityMedium, nil)
	dep := uuid.New()

	require.NoError(t, tsk.AddDependency(dep))
	require.NoError(t, tsk.AddDependency(dep))
	assert.Equal(t, 1, tsk.DependencyCount())
	assert.ErrorIs(t, tsk.AddDependency(tsk.ID()), task.ErrSelfDependency)

	ids := tsk.DependencyIDs()
	ids[0] = uuid.Nil
	assert.Equal(t, dep, tsk.DependencyIDs()[0])
}

func TestTask_IsOverdue(t *testing.T) {
	tests := []struct {
		name     string
		due      *time.Time
		complete bool
		expected bool
	}{
		{"no due date", nil, false, false},
		{"due in the future", at(time.Hour), false, false},
		{"due exactly now", at(0), false, false},
		{"due in the past", at(-time.Minute), false, true},
		{"past due but completed", at(-48 * time.Hour), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := newTask(t, value_objects.PriorityMedium, tt.due)
			if tt.complete {
				require.NoError(t, tsk.Complete(now))
			}
			assert.Equal(t, tt.expected, tsk.IsOverdue(now))
		})
	}
}

func TestTask_UrgencyScore(t *testing.T) {
	tests := []struct {
		name       string
		priority   value_objects.Priority
		due        *time.Time
		inProgress bool
		expected   int
	}{
		{"low without due date", value_objects.PriorityLow, nil, false, 25},
		{"medium without due date", value_objects.PriorityMedium, nil, false, 50},
		{"high without due date", value_objects.PriorityHigh, nil, false, 75},
		{"urgent due in 12 hours is clamped", value_objects.PriorityUrgent, at(12 * time.Hour), false, 100},
		{"low overdue by a day", value_objects.PriorityLow, at(-24 * time.Hour), false, 75},
		{"low overdue by less than a day", value_objects.PriorityLow, at(-6 * time.Hour), false, 75},
		{"low due in 30 hours", value_objects.PriorityLow, at(30 * time.Hour), false, 40},
		{"low due in 3 days", value_objects.PriorityLow, at(72 * time.Hour), false, 40},
		{"low due in 6 days", value_objects.PriorityLow, at(6 * 24 * time.Hour), false, 30},
		{"low due in 10 days", value_objects.PriorityLow, at(10 * 24 * time.Hour), false, 25},
		{"medium in progress", value_objects.PriorityMedium, nil, true, 70},
		{"high in progress due tomorrow", value_objects.PriorityHigh, at(20 * time.Hour), true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := newTask(t, tt.priority, tt.due)
			if tt.inProgress {
				require.NoError(t, tsk.Start())
			}
			assert.Equal(t, tt.expected, tsk.UrgencyScore(now))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		offset   time.Duration
		expected int
	}{
		{-25 * time.Hour, -1},
		{-24 * time.Hour, -1},
		{-time.Hour, 0},
		{0, 0},
		{time.Hour, 1},
		{12 * time.Hour, 1},
		{24 * time.Hour, 1},
		{36 * time.Hour, 2},
		{72 * time.Hour, 3},
	}

	for _, tt := range tests {
		t.Run(tt.offset.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, task.DaysUntil(now.Add(tt.offset), now))
		})
	}
}

func TestTask_UrgencyScore_CompletedIgnoresDueDate(t *testing.T) {
	tsk := newTask(t, value_objects.PriorityHigh, at(-72*time.Hour))
	require.NoError(t, tsk.Complete(now))

	assert.Equal(t, 75, tsk.UrgencyScore(now))
}

func TestTask_UrgencyScore_DependsOnlyOnNow(t *testing.T) {
	tsk := newTask(t, value_objects.PriorityLow, at(5*24*time.Hour))

	assert.Equal(t, 30, tsk.UrgencyScore(now))
	assert.Equal(t, 75, tsk.UrgencyScore(now.Add(6*24*time.Hour)))
	assert.Equal(t, 30, tsk.UrgencyScore(now))
}

func TestRehydrateTask(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	estimate := value_objects.MustNewDuration(45 * time.Minute)
	deps := []uuid.UUID{uuid.New(), uuid.New()}

	tsk := task.RehydrateTask(
		id, userID, "Draft memo", "for the offsite",
		value_objects.StatusInProgress, value_objects.PriorityHigh,
		&estimate, at(24*time.Hour), nil, deps,
		now.Add(-time.Hour), now, 3,
	)

	assert.Equal(t, id, tsk.ID())
	assert.Equal(t, "for the offsite", tsk.Description())
	assert.Equal(t, 3, tsk.Version())
	assert.Equal(t, 2, tsk.DependencyCount())
	got, ok := tsk.EstimatedDuration()
	require.True(t, ok)
	assert.Equal(t, 45, got.Minutes())
	assert.Empty(t, tsk.DomainEvents())
}
