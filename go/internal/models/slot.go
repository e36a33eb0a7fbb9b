package models

import "fmt"

// SlotName is one of the 8 fixed roster slots filled exactly once per run.
type SlotName string

const (
	SlotQB    SlotName = "QB"
	SlotRB1   SlotName = "RB1"
	SlotRB2   SlotName = "RB2"
	SlotWR1   SlotName = "WR1"
	SlotWR2   SlotName = "WR2"
	SlotTE    SlotName = "TE"
	SlotDST   SlotName = "DST"
	SlotCoach SlotName = "COACH"
)

// RosterSize is the number of slots in a run. A run is sealed when its pick
// count reaches this.
const RosterSize = 8

// AllSlots lists the closed slot vocabulary in board order.
var AllSlots = []SlotName{
	SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotDST, SlotCoach,
}

// ParseSlot validates a slot name against the closed vocabulary.
func ParseSlot(s string) (SlotName, error) {
	for _, slot := range AllSlots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown slot %q", s)
}

// RequiredPosition returns the player position a slot requires, or false for
// the DST and COACH slots which are not filled by players. Ordinal suffixes
// (RB1/RB2, WR1/WR2) map to the same position.
func (s SlotName) RequiredPosition() (Position, bool) {
	switch s {
	case SlotQB:
		return PositionQB, true
	case SlotRB1, SlotRB2:
		return PositionRB, true
	case SlotWR1, SlotWR2:
		return PositionWR, true
	case SlotTE:
		return PositionTE, true
	default:
		return "", false
	}
}
