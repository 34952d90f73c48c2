package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoScreenshots        = errors.New("no screenshots submitted")
	ErrTooManyScreenshots   = errors.New("too many screenshots")
	ErrAllScreenshotsFailed = errors.New("no screenshot could be recognized or parsed")
	ErrNoLastGame           = errors.New("no game has been submitted yet")
	ErrPlayerNotFound       = errors.New("player not found")
)
