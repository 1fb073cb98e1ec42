package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrSkillIndexOutOfRange = errors.New("skill index out of range")
	ErrUnknownCriterion     = errors.New("unknown sort criterion")
)
