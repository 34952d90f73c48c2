// Package ranking contains the domain model for a parsed game result: an
// ordered, contiguous, deduplicated list of players.
package ranking

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRE accepts trimmed names made of word characters, hyphens and single
// internal spaces.
var nameRE = regexp.MustCompile(`^[0-9A-Za-z_-]+( [0-9A-Za-z_-]+)*$`)

// Entry is one player at one finishing position.
type Entry struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Ranking is a fully-ordered game result. Positions are contiguous from 1
// and names are unique after case folding.
type Ranking struct {
	TotalPlayers int     `json:"total_players"`
	Entries      []Entry `json:"entries"`
}

// New validates entries and builds a Ranking. Entries must arrive ordered by
// position, positions must run 1..n without gaps, and names must be unique
// case-insensitively. A zero-entry ranking is legal; it represents a result
// from which every player was removed, never a failed parse.
func New(entries []Entry) (Ranking, error) {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if !nameRE.MatchString(e.Name) {
			return Ranking{}, fmt.Errorf("%w: %q", ErrInvalidName, e.Name)
		}
		if e.Position != i+1 {
			return Ranking{}, fmt.Errorf("%w: position %d at index %d", ErrNonContiguous, e.Position, i)
		}
		key := strings.ToLower(e.Name)
		if _, dup := seen[key]; dup {
			return Ranking{}, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[key] = struct{}{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return Ranking{TotalPlayers: len(out), Entries: out}, nil
}

// FromNames builds a Ranking assigning sequential positions in input order.
func FromNames(names []string) (Ranking, error) {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Entry{Name: n, Position: i + 1}
	}
	return New(entries)
}

// WithoutNames returns a copy with the given names removed
// (case-insensitive) and the remaining entries renumbered from 1 in their
// original relative order.
func (r Ranking) WithoutNames(names []string) Ranking {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[strings.ToLower(n)] = struct{}{}
	}
	kept := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if _, gone := drop[strings.ToLower(e.Name)]; gone {
			continue
		}
		kept = append(kept, Entry{Name: e.Name, Position: len(kept) + 1})
	}
	return Ranking{TotalPlayers: len(kept), Entries: kept}
}

// Contains reports whether name is present, compared case-insensitively.
func (r Ranking) Contains(name string) bool {
	key := strings.ToLower(name)
	for _, e := range r.Entries {
		if strings.ToLower(e.Name) == key {
			return true
		}
	}
	return false
}

// Empty reports whether the ranking holds no entries.
func (r Ranking) Empty() bool {
	return len(r.Entries) == 0
}
