package eventbus

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/execassist/internal/shared/domain"
)

// AuditTrail publishes the audit entries produced by application handlers.
// Publication is best effort: a broker failure is logged and never fails
// the operation that produced the entries.
type AuditTrail struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewAuditTrail creates an audit trail. A nil publisher discards entries.
func NewAuditTrail(publisher Publisher, logger *slog.Logger) *AuditTrail {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = NewNoopPublisher(logger)
	}
	return &AuditTrail{publisher: publisher, logger: logger}
}

// Record publishes the events and reports whether all were delivered.
func (a *AuditTrail) Record(ctx context.Context, events ...domain.DomainEvent) bool {
	if a == nil || len(events) == 0 {
		return true
	}
	if err := PublishEvents(ctx, a.publisher, events...); err != nil {
		a.logger.WarnContext(ctx, "failed to publish audit entries",
			"count", len(events),
			"routing_key", events[0].RoutingKey(),
			"error", err,
		)
		return false
	}
	return true
}
