package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the current step of a run's state machine.
type Phase string

const (
	PhaseNeedRoll  Phase = "NEED_ROLL"
	PhaseNeedSlot  Phase = "NEED_SLOT"
	PhaseNeedAsset Phase = "NEED_ASSET"
	PhaseComplete  Phase = "COMPLETE"
)

// RunState is the single mutable cursor for a run, exactly one row per run.
// Every engine operation acquires an exclusive lock on this row, which is what
// serializes concurrent calls against the same run.
//
// The phase determines which fields are set: CurrentTeamID is non-nil in
// NEED_SLOT and NEED_ASSET, PendingSlot only in NEED_ASSET.
type RunState struct {
	RunID         uuid.UUID  `json:"run_id"`
	Phase         Phase      `json:"phase"`
	CurrentTeamID *uuid.UUID `json:"current_team_id,omitempty"`
	PendingSlot   *SlotName  `json:"pending_slot,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
