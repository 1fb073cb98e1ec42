package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrEmptyInput    = errors.New("roster input is empty")
	ErrMissingHeader = errors.New("roster header needs a name column and at least one skill")
	ErrMalformedRow  = errors.New("roster row has the wrong number of columns")
	ErrInvalidRating = errors.New("skill rating is not a finite number")
	ErrOpen          = errors.New("roster file cannot be opened")
)
