package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates league lifecycle event types.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregatePlayer      AggregateType = "player"
	AggregateTable       AggregateType = "foosball_table"
	AggregateGame        AggregateType = "game"
	AggregatePerformance AggregateType = "performance"
)

// OutboxDraft is the payload written to the event_outbox table.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// OutboxEvent is a stored outbox row awaiting publication.
type OutboxEvent struct {
	SeqID int64 `json:"-"`
	OutboxDraft
}

// Topic returns the Kafka topic for the event.
func (d OutboxDraft) Topic() string {
	return "league." + string(d.AggregateType) + "." + string(d.EventType)
}

// NewLeagueEvent builds an outbox draft whose payload is the JSON form of entity.
// Player values serialize without password material.
func NewLeagueEvent(agg AggregateType, aggregateID string, evt EventType, entity any) (OutboxDraft, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return OutboxDraft{}, err
	}
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: agg,
		AggregateID:   aggregateID,
		EventType:     evt,
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}, nil
}
