package models

import (
	"time"

	"github.com/google/uuid"
)

// Coach represents a team's head coach. One per team.
type Coach struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	TeamID    uuid.UUID `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}
