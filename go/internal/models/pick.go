package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssetType tags what kind of asset fills a slot.
type AssetType string

const (
	AssetTypePlayer  AssetType = "PLAYER"
	AssetTypeCoach   AssetType = "COACH"
	AssetTypeDefense AssetType = "DEFENSE"
)

// Asset is the tagged variant assigned to a slot: a player reference, a coach
// reference, or the team's defense (no reference, the team itself is the
// asset). Exactly one reference field is set for the reference types; use the
// constructors.
type Asset struct {
	Type     AssetType  `json:"type"`
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
	CoachID  *uuid.UUID `json:"coach_id,omitempty"`
}

// PlayerAsset builds a player asset.
func PlayerAsset(playerID uuid.UUID) Asset {
	return Asset{Type: AssetTypePlayer, PlayerID: &playerID}
}

// CoachAsset builds a coach asset.
func CoachAsset(coachID uuid.UUID) Asset {
	return Asset{Type: AssetTypeCoach, CoachID: &coachID}
}

// DefenseAsset builds a defense asset.
func DefenseAsset() Asset {
	return Asset{Type: AssetTypeDefense}
}

// CheckShape verifies the reference fields match the tag: player assets carry
// exactly a player id, coach assets exactly a coach id, defense assets none.
func (a Asset) CheckShape() error {
	switch a.Type {
	case AssetTypePlayer:
		if a.PlayerID == nil || a.CoachID != nil {
			return fmt.Errorf("player asset requires exactly a player reference")
		}
	case AssetTypeCoach:
		if a.CoachID == nil || a.PlayerID != nil {
			return fmt.Errorf("coach asset requires exactly a coach reference")
		}
	case AssetTypeDefense:
		if a.PlayerID != nil || a.CoachID != nil {
			return fmt.Errorf("defense asset carries no reference")
		}
	default:
		return fmt.Errorf("unknown asset type %q", a.Type)
	}
	return nil
}

// Pick is one committed slot assignment. Within a run, slots and teams are
// both unique across picks; the storage layer enforces the same with
// uniqueness constraints so a logic bug cannot silently double-assign.
type Pick struct {
	ID       uuid.UUID `json:"id"`
	RunID    uuid.UUID `json:"run_id"`
	Slot     SlotName  `json:"slot"`
	TeamID   uuid.UUID `json:"team_id"`
	Asset    Asset     `json:"asset"`
	PickedAt time.Time `json:"picked_at"`
}
