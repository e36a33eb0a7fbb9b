package rosters

import "errors"

// ErrPlayerNotFound is returned when no player row matches the lookup.
var ErrPlayerNotFound = errors.New("player not found")

// ErrCoachNotFound is returned when no coach row matches the lookup.
var ErrCoachNotFound = errors.New("coach not found")
