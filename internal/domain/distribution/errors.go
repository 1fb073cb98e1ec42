package distribution

import "errors"

// Sentinel kinds for distribution errors. All of them are precondition
// failures detected before any team is created.
var (
	ErrNoValidPlan     = errors.New("team size must be smaller than the roster")
	ErrInvalidTeamSize = errors.New("team size must be positive")
	ErrEmptyRoster     = errors.New("roster is empty")
)
