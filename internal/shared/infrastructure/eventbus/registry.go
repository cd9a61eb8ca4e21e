package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// MatchAll subscribes to every routing key.
const MatchAll = "#"

// SubscriberRegistry manages subscribers and dispatches entries to them.
type SubscriberRegistry struct {
	subscribers map[string][]Subscriber
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewSubscriberRegistry creates a new subscriber registry.
func NewSubscriberRegistry(logger *slog.Logger) *SubscriberRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriberRegistry{
		subscribers: make(map[string][]Subscriber),
		logger:      logger,
	}
}

// Register adds a subscriber for its declared routing keys.
func (r *SubscriberRegistry) Register(sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range sub.RoutingKeys() {
		r.subscribers[key] = append(r.subscribers[key], sub)
		r.logger.Debug("registered subscriber", "routing_key", key)
	}
}

// Subscribers returns the subscribers for a routing key, exact matches first.
func (r *SubscriberRegistry) Subscribers(routingKey string) []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := append([]Subscriber(nil), r.subscribers[routingKey]...)
	if routingKey != MatchAll {
		subs = append(subs, r.subscribers[MatchAll]...)
	}
	return subs
}

// Count returns the total number of registrations.
func (r *SubscriberRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, subs := range r.subscribers {
		count += len(subs)
	}
	return count
}

// Dispatch sends an entry to every matching subscriber. All subscribers run
// even if one fails; the last error is returned.
func (r *SubscriberRegistry) Dispatch(ctx context.Context, env *Envelope) error {
	subs := r.Subscribers(env.RoutingKey)
	if len(subs) == 0 {
		r.logger.Debug("no subscribers", "routing_key", env.RoutingKey)
		return nil
	}

	var lastErr error
	for _, sub := range subs {
		if err := sub.Handle(ctx, env); err != nil {
			r.logger.Error("subscriber failed to handle entry",
				"routing_key", env.RoutingKey,
				"event_id", env.EventID,
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}
