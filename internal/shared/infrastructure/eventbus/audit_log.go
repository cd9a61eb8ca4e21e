package eventbus

import (
	"context"
	"log/slog"
)

// AuditLogSubscriber writes every audit entry to the structured log.
type AuditLogSubscriber struct {
	logger *slog.Logger
}

// NewAuditLogSubscriber creates a subscriber logging at info level.
func NewAuditLogSubscriber(logger *slog.Logger) *AuditLogSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogSubscriber{logger: logger}
}

// RoutingKeys subscribes to everything.
func (s *AuditLogSubscriber) RoutingKeys() []string {
	return []string{MatchAll}
}

// Handle logs the entry.
func (s *AuditLogSubscriber) Handle(ctx context.Context, env *Envelope) error {
	s.logger.InfoContext(ctx, "audit",
		"routing_key", env.RoutingKey,
		"aggregate_type", env.AggregateType,
		"aggregate_id", env.AggregateID,
		"event_id", env.EventID,
		"user_id", env.Metadata.UserID,
		"payload", string(env.Payload),
	)
	return nil
}
