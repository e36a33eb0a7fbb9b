package events

import "time"

// Event types written to the run outbox and published on the event stream.
const (
	EventRunStarted   = "RunStarted"
	EventTeamRolled   = "TeamRolled"
	EventSlotChosen   = "SlotChosen"
	EventSlotCleared  = "SlotCleared"
	EventPickMade     = "PickMade"
	EventRunCompleted = "RunCompleted"
)

// RunStartedPayload is emitted when a run is created.
type RunStartedPayload struct {
	RunID     string    `json:"run_id"`
	Season    int       `json:"season"`
	StartedAt time.Time `json:"started_at"`
}

// TeamRolledPayload is emitted when a team is assigned to the current cycle.
type TeamRolledPayload struct {
	RunID        string    `json:"run_id"`
	TeamID       string    `json:"team_id"`
	Abbreviation string    `json:"abbreviation"`
	RolledAt     time.Time `json:"rolled_at"`
}

// SlotChosenPayload is emitted when a slot is reserved for the current cycle.
type SlotChosenPayload struct {
	RunID    string    `json:"run_id"`
	Slot     string    `json:"slot"`
	ChosenAt time.Time `json:"chosen_at"`
}

// SlotClearedPayload is emitted when a pending slot choice is backed out.
type SlotClearedPayload struct {
	RunID     string    `json:"run_id"`
	ClearedAt time.Time `json:"cleared_at"`
}

// PickMadePayload is emitted when a pick is committed.
type PickMadePayload struct {
	RunID     string    `json:"run_id"`
	Slot      string    `json:"slot"`
	TeamID    string    `json:"team_id"`
	AssetType string    `json:"asset_type"`
	RefID     *string   `json:"ref_id,omitempty"`
	PickCount int       `json:"pick_count"`
	PickedAt  time.Time `json:"picked_at"`
}

// RunCompletedPayload is emitted when the final pick seals the run.
type RunCompletedPayload struct {
	RunID       string    `json:"run_id"`
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}
