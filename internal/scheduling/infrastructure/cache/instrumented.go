package cache

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/pkg/observability"
)

// InstrumentedCache counts hits and misses of the wrapped cache. Lookup
// errors count as misses.
type InstrumentedCache struct {
	next    queries.ResultCache
	metrics observability.Metrics
}

// NewInstrumentedCache wraps next.
func NewInstrumentedCache(next queries.ResultCache, metrics observability.Metrics) *InstrumentedCache {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &InstrumentedCache{next: next, metrics: metrics}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) (domain.SchedulingResult, bool, error) {
	result, ok, err := c.next.Get(ctx, key)
	if ok && err == nil {
		c.metrics.Counter(observability.MetricSchedulingCacheHits, 1)
	} else {
		c.metrics.Counter(observability.MetricSchedulingCacheMiss, 1)
	}
	return result, ok, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, result domain.SchedulingResult) error {
	return c.next.Set(ctx, key, result)
}
