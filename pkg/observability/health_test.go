package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthRegistry_GetOverallHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("store", StoreHealthChecker(ok))
		r.Register("cache", CacheHealthChecker(ok))

		health := r.GetOverallHealth(context.Background())

		assert.Equal(t, HealthStatusHealthy, health.Status)
		assert.Len(t, health.Checks, 2)
		assert.Equal(t, []string{"cache", "store"}, r.Names())
	})

	t.Run("optional component degrades", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("store", StoreHealthChecker(ok))
		r.Register("broker", BrokerHealthChecker(down))

		health := r.GetOverallHealth(context.Background())

		assert.Equal(t, HealthStatusDegraded, health.Status)
		assert.Equal(t, "broker unreachable: connection refused", health.Checks["broker"].Message)
	})

	t.Run("store failure is unhealthy", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("store", StoreHealthChecker(down))
		r.Register("cache", CacheHealthChecker(down))

		health := r.GetOverallHealth(context.Background())

		assert.Equal(t, HealthStatusUnhealthy, health.Status)
	})

	t.Run("empty registry is healthy", func(t *testing.T) {
		health := NewHealthRegistry().GetOverallHealth(context.Background())
		assert.Equal(t, HealthStatusHealthy, health.Status)
		assert.Empty(t, health.Checks)
	})
}

func TestCircuitHealthChecker(t *testing.T) {
	closed := CircuitHealthChecker(func() string { return "closed" })(context.Background())
	open := CircuitHealthChecker(func() string { return "open" })(context.Background())

	assert.Equal(t, HealthStatusHealthy, closed.Status)
	assert.Equal(t, HealthStatusDegraded, open.Status)
	assert.Equal(t, "circuit open", open.Message)
}
