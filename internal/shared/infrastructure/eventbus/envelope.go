package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/google/uuid"
)

// Subscriber handles audit entries for a set of routing keys.
type Subscriber interface {
	// RoutingKeys returns the keys this subscriber handles. "#" matches
	// every key.
	RoutingKeys() []string

	// Handle processes the entry.
	Handle(ctx context.Context, envelope *Envelope) error
}

// Envelope is the wire form of a domain event.
type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      EventMetadata   `json:"metadata,omitempty"`
}

// EventMetadata contains optional tracing information about the event.
type EventMetadata struct {
	UserID        uuid.UUID `json:"user_id,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CausationID   string    `json:"causation_id,omitempty"`
}

// NewEnvelope wraps a domain event. The payload holds the event's exported
// fields.
func NewEnvelope(event domain.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", event.RoutingKey(), err)
	}

	md := event.Metadata()
	env := &Envelope{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata: EventMetadata{
			UserID: md.UserID,
		},
	}
	if md.CorrelationID != uuid.Nil {
		env.Metadata.CorrelationID = md.CorrelationID.String()
	}
	if md.CausationID != uuid.Nil {
		env.Metadata.CausationID = md.CausationID.String()
	}
	return env, nil
}
