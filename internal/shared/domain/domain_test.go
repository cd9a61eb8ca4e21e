package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledger struct {
	domain.BaseAggregateRoot
}

type ledgerOpened struct {
	domain.BaseEvent
}

func openLedger() *ledger {
	l := &ledger{BaseAggregateRoot: domain.NewBaseAggregateRoot()}
	l.AddDomainEvent(ledgerOpened{BaseEvent: domain.NewBaseEvent(l.ID(), "Ledger", "test.ledger.opened")})
	return l
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	t.Run("records events until pulled", func(t *testing.T) {
		l := openLedger()
		l.AddDomainEvent(ledgerOpened{BaseEvent: domain.NewBaseEvent(l.ID(), "Ledger", "test.ledger.opened")})

		require.Len(t, l.DomainEvents(), 2)
		for _, e := range l.DomainEvents() {
			assert.Equal(t, l.ID(), e.AggregateID())
		}

		pulled := l.PullDomainEvents()

		assert.Len(t, pulled, 2)
		assert.Empty(t, l.DomainEvents())
	})

	t.Run("clear discards events", func(t *testing.T) {
		l := openLedger()

		l.ClearDomainEvents()

		assert.Empty(t, l.DomainEvents())
	})
}

func TestBaseAggregateRoot_Version(t *testing.T) {
	l := openLedger()
	assert.Equal(t, 0, l.Version())

	l.IncrementVersion()
	l.IncrementVersion()

	assert.Equal(t, 2, l.Version())

	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rehydrated := domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(l.ID(), created, created), 7)
	assert.Equal(t, 7, rehydrated.Version())
	assert.Equal(t, created, rehydrated.CreatedAt())
	assert.Empty(t, rehydrated.DomainEvents())
}

func TestBaseEntity(t *testing.T) {
	before := time.Now().UTC()
	entity := domain.NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, entity.ID())
	assert.False(t, entity.CreatedAt().Before(before))
	assert.Equal(t, entity.CreatedAt(), entity.UpdatedAt())

	time.Sleep(time.Millisecond)
	entity.Touch()
	assert.True(t, entity.UpdatedAt().After(entity.CreatedAt()))

	same := domain.RehydrateBaseEntity(entity.ID(), entity.CreatedAt(), entity.UpdatedAt())
	other := domain.NewBaseEntity()
	assert.True(t, entity.Equals(same))
	assert.False(t, entity.Equals(other))
	assert.False(t, entity.Equals(nil))
}

func TestNewBaseEventAt(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2024, 6, 12, 11, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	event := domain.NewBaseEventAt(aggregateID, "Scheduling", "scheduling.suggestions.generated", at)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Scheduling", event.AggregateType())
	assert.Equal(t, "scheduling.suggestions.generated", event.RoutingKey())
	assert.Equal(t, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), event.OccurredAt())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
}

func TestBaseEvent_Metadata(t *testing.T) {
	md := domain.EventMetadata{CorrelationID: uuid.New(), CausationID: uuid.New(), UserID: uuid.New()}
	event := domain.NewBaseEvent(uuid.New(), "Task", "productivity.task.created")

	event.SetMetadata(md)

	assert.Equal(t, md, event.Metadata())
}
