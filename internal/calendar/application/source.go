package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
)

// ErrProviderUnavailable is returned while a provider's circuit is open.
var ErrProviderUnavailable = errors.New("calendar provider unavailable")

// MeetingSource lists meeting snapshots owned by an external calendar.
type MeetingSource interface {
	ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]schedulingDomain.Meeting, error)
}

// BreakerConfig configures the circuit breaker around a provider.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold uint32
	// Timeout is how long the circuit stays open before a probe is allowed.
	Timeout time.Duration
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns the breaker settings used when none are configured.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerSource guards a MeetingSource with a circuit breaker.
type BreakerSource struct {
	name    string
	source  MeetingSource
	breaker *gobreaker.CircuitBreaker[[]schedulingDomain.Meeting]
	logger  *slog.Logger
}

// NewBreakerSource wraps source. Zero config fields fall back to DefaultBreakerConfig.
func NewBreakerSource(name string, source MeetingSource, cfg BreakerConfig, logger *slog.Logger) *BreakerSource {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaults.MaxRequests
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]schedulingDomain.Meeting](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("calendar provider circuit changed",
				"provider", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up is not the provider's fault.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerSource{
		name:    name,
		source:  source,
		breaker: breaker,
		logger:  logger,
	}
}

// Name returns the provider name.
func (s *BreakerSource) Name() string {
	return s.name
}

// State returns the current circuit state.
func (s *BreakerSource) State() gobreaker.State {
	return s.breaker.State()
}

// ListMeetings calls the wrapped source unless the circuit is open.
func (s *BreakerSource) ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]schedulingDomain.Meeting, error) {
	meetings, err := s.breaker.Execute(func() ([]schedulingDomain.Meeting, error) {
		return s.source.ListMeetings(ctx, userID, start, end)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, s.name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return meetings, nil
}

// NamedSource pairs a source with the name used in logs.
type NamedSource struct {
	Name   string
	Source MeetingSource
}

// CompositeSource merges several providers. A failing provider is logged and
// skipped so scheduling can continue on the remaining snapshots.
type CompositeSource struct {
	sources []NamedSource
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewCompositeSource creates a composite over sources.
func NewCompositeSource(logger *slog.Logger, sources ...NamedSource) *CompositeSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompositeSource{sources: sources, logger: logger, metrics: observability.NoopMetrics{}}
}

// WithMetrics counts skipped provider calls.
func (c *CompositeSource) WithMetrics(metrics observability.Metrics) *CompositeSource {
	if metrics != nil {
		c.metrics = metrics
	}
	return c
}

// CircuitStates returns the breaker state of each guarded provider by name.
func (c *CompositeSource) CircuitStates() map[string]string {
	states := make(map[string]string)
	for _, named := range c.sources {
		if b, ok := named.Source.(*BreakerSource); ok {
			states[named.Name] = b.State().String()
		}
	}
	return states
}

// Len returns the number of providers.
func (c *CompositeSource) Len() int {
	return len(c.sources)
}

// ListMeetings queries every provider concurrently and merges the results in
// provider order, dropping duplicate ids.
func (c *CompositeSource) ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]schedulingDomain.Meeting, error) {
	results := make([][]schedulingDomain.Meeting, len(c.sources))

	var g errgroup.Group
	for i, named := range c.sources {
		g.Go(func() error {
			meetings, err := named.Source.ListMeetings(ctx, userID, start, end)
			if err != nil {
				c.logger.WarnContext(ctx, "calendar provider skipped",
					"provider", named.Name,
					"error", err,
				)
				c.metrics.Counter(observability.MetricCalendarFetchErrors, 1, observability.T("provider", named.Name))
				return nil
			}
			results[i] = meetings
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[uuid.UUID]struct{})
	merged := make([]schedulingDomain.Meeting, 0)
	for _, meetings := range results {
		for _, m := range meetings {
			if _, ok := seen[m.ID()]; ok {
				continue
			}
			seen[m.ID()] = struct{}{}
			merged = append(merged, m)
		}
	}
	return merged, nil
}
