package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const storeFileMode = 0o644

// JSONStore persists the board as an indented JSON object in a single file.
// The format stays human-readable and hand-editable; the exact bytes are not
// load-bearing beyond being re-parseable by Load.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the board from disk. A missing file is a fresh start, not an
// error. Malformed content degrades to an empty board with an
// ErrCorruptStore-wrapped error so the caller can warn without failing
// startup.
func (s *JSONStore) Load(_ context.Context) (Board, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Board{}, nil
	}
	if err != nil {
		return Board{}, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	board := Board{}
	if err := json.Unmarshal(data, &board); err != nil {
		return Board{}, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	return board, nil
}

// Save atomically overwrites the store: write to a temp file in the same
// directory, then rename over the target so a crash mid-write never leaves
// a torn store behind.
func (s *JSONStore) Save(_ context.Context, board Board) error {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Chmod(tmpName, storeFileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
