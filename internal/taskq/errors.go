package taskq

import "errors"

// ErrClosed reports a submission to a queue that is shutting down.
var ErrClosed = errors.New("task queue closed")
