package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// InProcessBus delivers audit entries synchronously to registered
// subscribers. It is the publisher used when no broker is configured.
type InProcessBus struct {
	registry *SubscriberRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewInProcessBus creates a new in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewSubscriberRegistry(logger),
		logger:   logger,
	}
}

// Subscribe registers a subscriber.
func (b *InProcessBus) Subscribe(sub Subscriber) {
	b.registry.Register(sub)
}

// Publish decodes the envelope and dispatches it. Subscriber failures are
// logged and never returned to the publisher.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	env := &Envelope{}
	if err := json.Unmarshal(payload, env); err != nil {
		b.logger.Error("failed to decode audit entry",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if env.RoutingKey == "" {
		env.RoutingKey = routingKey
	}

	start := time.Now()
	err := b.registry.Dispatch(ctx, env)
	duration := time.Since(start)

	if err != nil {
		b.logger.Error("audit dispatch failed",
			"routing_key", routingKey,
			"event_id", env.EventID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil
	}

	b.logger.Debug("audit entry dispatched",
		"routing_key", routingKey,
		"event_id", env.EventID,
		"duration_ms", duration.Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}

// Registry returns the underlying subscriber registry.
func (b *InProcessBus) Registry() *SubscriberRegistry {
	return b.registry
}
