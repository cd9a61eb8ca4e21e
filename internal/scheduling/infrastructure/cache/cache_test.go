package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/application/services"
	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

// sampleResult searches Monday 2024-06-10 10:00-12:00 next to a blocking
// meeting, so the 10:00 candidate conflicts and 10:30 is the best slot.
func sampleResult(t *testing.T) domain.SchedulingResult {
	t.Helper()
	blocking, err := domain.NewMeeting(uuid.New(), "Investor call", domain.MustNewTimeRange(at(10, 10, 0), at(10, 10, 15)), at(7, 9, 0))
	require.NoError(t, err)

	req := domain.NewSchedulingRequest("Planning", 60, "ana@example.com")
	earliest, latest := at(10, 10, 0), at(10, 12, 0)
	req.EarliestDate = &earliest
	req.LatestDate = &latest

	result := services.NewSchedulerEngine(services.EngineOptions{}).
		SuggestMeetingTimes(req, []domain.Meeting{blocking}, at(9, 12, 0))
	require.NotEmpty(t, result.Conflicts)
	require.NotNil(t, result.BestSuggestion)
	return result
}

var resultOptions = cmp.Options{
	cmp.AllowUnexported(domain.Meeting{}, domain.TimeRange{}),
	cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

func TestResultDocument_PreservesResult(t *testing.T) {
	original := sampleResult(t)

	data, err := encodeResult(original)
	require.NoError(t, err)
	decoded, err := decodeResult(data)
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded, resultOptions); diff != "" {
		t.Errorf("decoded result mismatch (-want +got):\n%s", diff)
	}
}

func TestResultDocument_ValidationOnly(t *testing.T) {
	original := domain.SchedulingResult{
		ValidationErrors: []string{"Meeting title is required"},
		EvaluatedAt:      at(9, 12, 0),
	}

	data, err := encodeResult(original)
	require.NoError(t, err)
	decoded, err := decodeResult(data)
	require.NoError(t, err)

	assert.False(t, decoded.IsValid())
	assert.Nil(t, decoded.BestSuggestion)
	assert.Empty(t, decoded.Suggestions)
}

func TestResultDocument_RejectsGarbage(t *testing.T) {
	_, err := decodeResult([]byte("{not json"))
	assert.Error(t, err)
}

func TestMemoryResultCache(t *testing.T) {
	ctx := context.Background()
	clock := at(9, 12, 0)
	c := NewMemoryResultCache(time.Minute)
	c.now = func() time.Time { return clock }

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	original := sampleResult(t)
	require.NoError(t, c.Set(ctx, "k", original))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, original.Summary, got.Summary)

	clock = clock.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestRedisResultCache(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Failed to ping redis: %v", err)
	}

	c := NewRedisResultCache(client, time.Minute)
	key := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = client.Del(ctx, keyPrefix+key).Err() })

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	original := sampleResult(t)
	require.NoError(t, c.Set(ctx, key, original))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(original, got, resultOptions); diff != "" {
		t.Errorf("cached result mismatch (-want +got):\n%s", diff)
	}

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	c := NewInstrumentedCache(NewMemoryResultCache(time.Minute), metrics)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", sampleResult(t)))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricSchedulingCacheHits))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricSchedulingCacheMiss))
}
