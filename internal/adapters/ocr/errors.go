package ocr

import "errors"

// Sentinel kinds for recognition errors.
var (
	// ErrEmptyText reports that the engine produced no usable text.
	ErrEmptyText = errors.New("no text recognized")
	// ErrBadImage reports an image the engine could not read.
	ErrBadImage = errors.New("unreadable image")
)
