package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository reads and marks relay progress on the run_outbox table. Inserts
// happen in the engine's own transactions, not here.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const fetchUnsentQuery = `
SELECT id, run_id, event_type, payload, created_at
FROM run_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED
`

// FetchUnsent claims up to limit unsent events within tx. SKIP LOCKED keeps
// concurrent relays from publishing the same batch.
func (r *Repository) FetchUnsent(ctx context.Context, tx *sql.Tx, limit int32) ([]OutboxEvent, error) {
	rows, err := tx.QueryContext(ctx, fetchUnsentQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.RunID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	return events, nil
}

const markSentQuery = `
UPDATE run_outbox
SET sent_at = NOW()
WHERE id = ANY($1)
`

func (r *Repository) MarkSent(ctx context.Context, tx *sql.Tx, ids []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, markSentQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to mark outbox events as sent: %w", err)
	}
	return nil
}

func (r *Repository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}
