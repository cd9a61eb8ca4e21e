package eventbus

import (
	"context"
	"encoding/json"

	"github.com/felixgeelhaar/execassist/internal/shared/domain"
)

// Publisher defines the interface for publishing audit entries to a broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishEvents encodes each event as an Envelope and publishes it under
// its routing key. It stops at the first failure.
func PublishEvents(ctx context.Context, pub Publisher, events ...domain.DomainEvent) error {
	for _, event := range events {
		env, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(env)
		if err != nil {
			return err
		}
		if err := pub.Publish(ctx, env.RoutingKey, payload); err != nil {
			return err
		}
	}
	return nil
}
