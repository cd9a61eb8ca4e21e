package queries

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type taskOption func(*testing.T, *task.Task)

func withPriority(p value_objects.Priority) taskOption {
	return func(t *testing.T, tsk *task.Task) {
		require.NoError(t, tsk.SetPriority(p))
	}
}

func withDue(due time.Time) taskOption {
	return func(_ *testing.T, tsk *task.Task) {
		tsk.SetDueDate(&due)
	}
}

func withEstimate(minutes int) taskOption {
	return func(t *testing.T, tsk *task.Task) {
		estimate, err := value_objects.DurationFromMinutes(minutes)
		require.NoError(t, err)
		tsk.SetEstimatedDuration(estimate)
	}
}

func started() taskOption {
	return func(t *testing.T, tsk *task.Task) {
		require.NoError(t, tsk.Start())
	}
}

func completed() taskOption {
	return func(t *testing.T, tsk *task.Task) {
		require.NoError(t, tsk.Complete(testNow.Add(-time.Hour)))
	}
}

func createTestTask(t *testing.T, userID uuid.UUID, title string, opts ...taskOption) *task.Task {
	t.Helper()
	tsk, err := task.NewTask(userID, title)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(t, tsk)
	}
	tsk.PullDomainEvents()
	return tsk
}

// recordingPublisher captures the routing keys of published audit entries.
type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuditTrail() (*eventbus.AuditTrail, *recordingPublisher) {
	pub := &recordingPublisher{}
	return eventbus.NewAuditTrail(pub, discardLogger()), pub
}
