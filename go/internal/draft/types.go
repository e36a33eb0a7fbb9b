package draft

import (
	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
)

// RolledTeam is the output of a roll: the selected team's identity and
// display attributes.
type RolledTeam struct {
	TeamID       string `json:"team_id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url"`
}

// PickAssetRequest carries the asset chosen for the pending slot.
type PickAssetRequest struct {
	AssetType models.AssetType `json:"asset_type"`
	PlayerID  *uuid.UUID       `json:"player_id,omitempty"`
	CoachID   *uuid.UUID       `json:"coach_id,omitempty"`
}

// Asset converts the request to the domain variant. Shape violations surface
// through the validator, not here.
func (r PickAssetRequest) Asset() models.Asset {
	return models.Asset{
		Type:     r.AssetType,
		PlayerID: r.PlayerID,
		CoachID:  r.CoachID,
	}
}

// RunProgress is the presentation read path: everything needed to render the
// 8-slot board after an operation.
type RunProgress struct {
	Run       *models.Run       `json:"run"`
	State     *models.RunState  `json:"state"`
	Picks     []models.Pick     `json:"picks"`
	FreeSlots []models.SlotName `json:"free_slots"`
}

// EligibleAssets lists what may legally fill the pending slot for the current
// team: candidate players for player slots, the head coach for COACH, or the
// team defense for DST.
type EligibleAssets struct {
	Slot    models.SlotName `json:"slot"`
	Players []models.Player `json:"players,omitempty"`
	Coach   *models.Coach   `json:"coach,omitempty"`
	Defense bool            `json:"defense,omitempty"`
}
