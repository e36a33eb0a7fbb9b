package models

import (
	"time"

	"github.com/google/uuid"
)

// Position is a player's roster position.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Player represents a season-scoped roster entry. A player row belongs to
// exactly one team for one season.
type Player struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Position  Position  `json:"position"`
	TeamID    uuid.UUID `json:"team_id"`
	Season    int       `json:"season"`
	CreatedAt time.Time `json:"created_at"`
}
