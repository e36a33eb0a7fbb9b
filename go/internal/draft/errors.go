package draft

import "errors"

// Engine error kinds. Every operation fails with exactly one of these; the
// service layer maps them to transport codes. Repositories surface storage
// constraint violations as the matching kind rather than a driver error.
var (
	// ErrNotAuthenticated means no caller identity was supplied.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRunNotFound means the run does not exist or is not owned by the caller.
	ErrRunNotFound = errors.New("run not found")

	// ErrDuplicateRun means a run already exists for this (user, season).
	ErrDuplicateRun = errors.New("run already exists for this user and season")

	// ErrInvalidPhase means the operation is not legal in the run's current phase.
	ErrInvalidPhase = errors.New("operation not legal in current phase")

	// ErrInvalidSlot means the slot name is outside the closed vocabulary.
	ErrInvalidSlot = errors.New("unknown roster slot")

	// ErrSlotAlreadyFilled means the requested slot already has a pick.
	ErrSlotAlreadyFilled = errors.New("slot already filled in this run")

	// ErrTeamAlreadyUsed means the current team already has a pick in this run.
	ErrTeamAlreadyUsed = errors.New("team already used in this run")

	// ErrNoTeamsRemaining means the eligible team pool is empty. Cannot occur
	// under the 8-slot/32-team design but is handled defensively.
	ErrNoTeamsRemaining = errors.New("no teams remaining to roll")

	// ErrAssetTeamMismatch means the referenced player/coach does not belong to
	// the current team (or season, for players).
	ErrAssetTeamMismatch = errors.New("asset does not belong to the current team")

	// ErrAssetPositionMismatch means the asset does not satisfy the pending
	// slot's shape: wrong player position, or wrong asset type for the slot.
	ErrAssetPositionMismatch = errors.New("asset does not satisfy the slot requirement")
)
