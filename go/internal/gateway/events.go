package gateway

import (
	"encoding/json"
	"time"
)

// RunEvent is the frame pushed to WebSocket clients watching a run. Data
// carries the domain payload unchanged from the outbox.
type RunEvent struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}
