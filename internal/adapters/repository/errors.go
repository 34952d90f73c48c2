package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrCorruptStore = errors.New("bounty store unreadable")
	ErrSave         = errors.New("bounty store save failed")
)
