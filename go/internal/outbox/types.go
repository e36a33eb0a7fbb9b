package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is one row of the run_outbox table: a domain event dual-written
// in the engine transaction that produced it.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	RunID     uuid.UUID       `json:"run_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// EventPublisher delivers an outbox event to the downstream stream. Publishing
// must be idempotent on event ID since the relay retries.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}
