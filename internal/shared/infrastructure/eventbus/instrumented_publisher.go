package eventbus

import (
	"context"

	"github.com/felixgeelhaar/execassist/pkg/observability"
)

// InstrumentedPublisher counts delivered entries per routing key. Keys
// listed in aliases also increment the named domain metric.
type InstrumentedPublisher struct {
	next    Publisher
	metrics observability.Metrics
	aliases map[string]string
}

// NewInstrumentedPublisher wraps next.
func NewInstrumentedPublisher(next Publisher, metrics observability.Metrics, aliases map[string]string) *InstrumentedPublisher {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &InstrumentedPublisher{next: next, metrics: metrics, aliases: aliases}
}

// Publish forwards the entry and records it on success.
func (p *InstrumentedPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	if err := p.next.Publish(ctx, routingKey, payload); err != nil {
		return err
	}
	p.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("routing_key", routingKey))
	if name, ok := p.aliases[routingKey]; ok {
		p.metrics.Counter(name, 1)
	}
	return nil
}

// Close closes the wrapped publisher.
func (p *InstrumentedPublisher) Close() error {
	return p.next.Close()
}
