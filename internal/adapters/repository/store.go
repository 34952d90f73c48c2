// Package repository persists the bounty board between process runs.
package repository

import "context"

// Board is the persisted shape: player name to cumulative signed bounty.
type Board = map[string]int

// Store provides whole-board load/save access to stable storage.
type Store interface {
	// Load returns the saved board. A missing store yields an empty board
	// and no error. A corrupt store yields an empty board and an error
	// wrapping ErrCorruptStore; callers are expected to warn and continue.
	Load(ctx context.Context) (Board, error)

	// Save overwrites the whole store with board. The write must be atomic
	// with respect to crashes: a failed save leaves the previous store
	// readable.
	Save(ctx context.Context, board Board) error
}
