// Package events defines the envelope shared by every domain event the
// service publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
	// PartitionKey groups related events on the broker.
	PartitionKey() string
}

// BaseEvent carries the envelope fields and is embedded by concrete events.
type BaseEvent struct {
	ID        uuid.UUID `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate uuid.UUID `json:"aggregate_id"`
	Key       string    `json:"-"`
	Occurred  time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated ID.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, key string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Aggregate: aggregateID,
		Key:       key,
		Occurred:  occurredAt.UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time  { return e.Occurred }
func (e BaseEvent) PartitionKey() string   { return e.Key }
