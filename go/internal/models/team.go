package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents one of the 32 NFL teams. The catalog is immutable from the
// engine's perspective; teams are referenced by picks and by the roll query.
type Team struct {
	ID           uuid.UUID `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
}
