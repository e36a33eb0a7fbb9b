package draft

import (
	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
)

// ValidateAsset checks a proposed asset against the pending slot, given the
// current team and active season. Pure function: the caller resolves the
// referenced player/coach first and passes nil when the reference does not
// resolve.
//
// Branches by slot:
//   - DST: the asset must be the team defense, no reference. The team itself
//     is the asset, so nothing further to check.
//   - COACH: the asset must reference a coach belonging to the current team.
//   - player slots: the asset must reference a player belonging to the
//     current team for the active season, at the slot's required position.
//     Ordinal slots (RB1/RB2, WR1/WR2) validate per position, not per ordinal.
//
// Team/season mismatches report ErrAssetTeamMismatch; shape and position
// mismatches report ErrAssetPositionMismatch.
func ValidateAsset(
	slot models.SlotName,
	asset models.Asset,
	currentTeam uuid.UUID,
	season int,
	player *models.Player,
	coach *models.Coach,
) error {
	if err := asset.CheckShape(); err != nil {
		return ErrAssetPositionMismatch
	}

	switch slot {
	case models.SlotDST:
		if asset.Type != models.AssetTypeDefense {
			return ErrAssetPositionMismatch
		}
		return nil

	case models.SlotCoach:
		if asset.Type != models.AssetTypeCoach {
			return ErrAssetPositionMismatch
		}
		if coach == nil || coach.TeamID != currentTeam {
			return ErrAssetTeamMismatch
		}
		return nil

	default:
		required, ok := slot.RequiredPosition()
		if !ok {
			// Unreachable with the closed vocabulary; defensive.
			return ErrInvalidSlot
		}
		if asset.Type != models.AssetTypePlayer {
			return ErrAssetPositionMismatch
		}
		if player == nil || player.TeamID != currentTeam || player.Season != season {
			return ErrAssetTeamMismatch
		}
		if player.Position != required {
			return ErrAssetPositionMismatch
		}
		return nil
	}
}
