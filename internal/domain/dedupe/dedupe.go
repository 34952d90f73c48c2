// Package dedupe tracks player names already accepted during a parse or
// merge pass, comparing case-insensitively.
package dedupe

import "strings"

// Names records accepted names keyed by their case-folded form. The zero
// value is not usable; construct with NewNames.
type Names struct {
	seen map[string]string
}

// NewNames creates an empty tracker.
func NewNames() *Names {
	return &Names{seen: make(map[string]string)}
}

// SeenAndRecord checks whether name was already recorded under case folding
// and records it if not. Returns true if the name had been seen before.
func (n *Names) SeenAndRecord(name string) bool {
	key := strings.ToLower(name)
	if _, ok := n.seen[key]; ok {
		return true
	}
	n.seen[key] = name
	return false
}

// Seen reports whether name was recorded, without recording it.
func (n *Names) Seen(name string) bool {
	_, ok := n.seen[strings.ToLower(name)]
	return ok
}

// Size returns the number of distinct names recorded.
func (n *Names) Size() int {
	return len(n.seen)
}
