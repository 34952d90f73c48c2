package merge

import "errors"

// ErrNoRankings reports a merge call without any parsed screenshots.
var ErrNoRankings = errors.New("no rankings to merge")
