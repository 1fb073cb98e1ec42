package service

import "errors"

// Sentinel kinds for controller errors.
var (
	ErrNoRoster = errors.New("no roster loaded")
	ErrNoTeams  = errors.New("no teams generated yet")
)
