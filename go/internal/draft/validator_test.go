package draft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateAsset(t *testing.T) {
	teamID := uuid.New()
	otherTeamID := uuid.New()
	playerID := uuid.New()
	coachID := uuid.New()
	season := 2025

	rb := &models.Player{ID: playerID, Position: models.PositionRB, TeamID: teamID, Season: season}
	wr := &models.Player{ID: playerID, Position: models.PositionWR, TeamID: teamID, Season: season}
	coach := &models.Coach{ID: coachID, TeamID: teamID}

	tests := []struct {
		name    string
		slot    models.SlotName
		asset   models.Asset
		player  *models.Player
		coach   *models.Coach
		wantErr error
	}{
		{
			name:  "rb fills RB1",
			slot:  models.SlotRB1,
			asset: models.PlayerAsset(playerID), player: rb,
		},
		{
			name:  "rb fills RB2",
			slot:  models.SlotRB2,
			asset: models.PlayerAsset(playerID), player: rb,
		},
		{
			name:  "wr rejected for RB1",
			slot:  models.SlotRB1,
			asset: models.PlayerAsset(playerID), player: wr,
			wantErr: ErrAssetPositionMismatch,
		},
		{
			name:  "wrong team player rejected",
			slot:  models.SlotWR1,
			asset: models.PlayerAsset(playerID),
			player: &models.Player{
				ID: playerID, Position: models.PositionWR, TeamID: otherTeamID, Season: season,
			},
			wantErr: ErrAssetTeamMismatch,
		},
		{
			name:  "wrong season player rejected",
			slot:  models.SlotRB1,
			asset: models.PlayerAsset(playerID),
			player: &models.Player{
				ID: playerID, Position: models.PositionRB, TeamID: teamID, Season: season - 1,
			},
			wantErr: ErrAssetTeamMismatch,
		},
		{
			name:    "unresolvable player rejected",
			slot:    models.SlotQB,
			asset:   models.PlayerAsset(playerID),
			wantErr: ErrAssetTeamMismatch,
		},
		{
			name:    "coach asset rejected for player slot",
			slot:    models.SlotTE,
			asset:   models.CoachAsset(coachID),
			coach:   coach,
			wantErr: ErrAssetPositionMismatch,
		},
		{
			name:  "coach fills COACH",
			slot:  models.SlotCoach,
			asset: models.CoachAsset(coachID), coach: coach,
		},
		{
			name:    "wrong team coach rejected",
			slot:    models.SlotCoach,
			asset:   models.CoachAsset(coachID),
			coach:   &models.Coach{ID: coachID, TeamID: otherTeamID},
			wantErr: ErrAssetTeamMismatch,
		},
		{
			name:    "unresolvable coach rejected",
			slot:    models.SlotCoach,
			asset:   models.CoachAsset(coachID),
			wantErr: ErrAssetTeamMismatch,
		},
		{
			name:  "defense fills DST",
			slot:  models.SlotDST,
			asset: models.DefenseAsset(),
		},
		{
			name:    "defense rejected for player slot",
			slot:    models.SlotQB,
			asset:   models.DefenseAsset(),
			wantErr: ErrAssetPositionMismatch,
		},
		{
			name:    "player asset rejected for DST",
			slot:    models.SlotDST,
			asset:   models.PlayerAsset(playerID),
			player:  rb,
			wantErr: ErrAssetPositionMismatch,
		},
		{
			name:    "malformed asset rejected",
			slot:    models.SlotQB,
			asset:   models.Asset{Type: models.AssetTypePlayer},
			wantErr: ErrAssetPositionMismatch,
		},
		{
			name:    "defense carrying reference rejected",
			slot:    models.SlotDST,
			asset:   models.Asset{Type: models.AssetTypeDefense, PlayerID: &playerID},
			wantErr: ErrAssetPositionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAsset(tt.slot, tt.asset, teamID, season, tt.player, tt.coach)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
