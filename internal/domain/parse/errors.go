package parse

import "errors"

// ErrNoEntries reports that no player could be recognized in the text, even
// by the aggressive fallback pass.
var ErrNoEntries = errors.New("no players recognized")
