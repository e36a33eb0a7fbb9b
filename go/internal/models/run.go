package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus defines the overall status of a draft run.
type RunStatus string

const (
	RunStatusActive   RunStatus = "ACTIVE"
	RunStatusComplete RunStatus = "COMPLETE"
)

// Run represents one attempt by one user, for one season, to fill all roster
// slots. At most one run exists per (user, season); the uniqueness is enforced
// by the storage layer.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Season      int        `json:"season"`
	Status      RunStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
