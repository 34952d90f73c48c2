package ranking

import "errors"

// Sentinel kinds for ranking construction errors.
var (
	ErrInvalidName   = errors.New("invalid player name")
	ErrNonContiguous = errors.New("positions not contiguous from 1")
	ErrDuplicateName = errors.New("duplicate player name")
)
