package service

import (
	"context"
	"strings"

	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/pkg/logger"
	"github.com/marblehq/bountyboard/pkg/metrics"
)

// mutate runs fn over the board under the writer lock and persists the
// result. On a failed save the pre-mutation board is restored, keeping
// ledger changes all-or-nothing. Must only be called from the task-queue
// runner.
func (s *Service) mutate(ctx context.Context, fn func(board map[string]int)) error {
	s.mu.Lock()
	backup := cloneBoard(s.board)
	fn(s.board)
	snapshot := cloneBoard(s.board)
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		s.mu.Lock()
		s.board = backup
		s.mu.Unlock()
		return err
	}
	metrics.RecordLedgerSave()
	metrics.UpdateLedgerPlayers(len(snapshot))
	return nil
}

// applyRanking credits every entry of r and records r as the last game.
func (s *Service) applyRanking(ctx context.Context, r ranking.Ranking) error {
	var taskErr error
	err := s.tasks.Do(ctx, func() {
		taskErr = s.mutate(ctx, func(board map[string]int) {
			s.applyOn(board, r)
		})
		if taskErr != nil {
			return
		}
		s.mu.Lock()
		s.lastGame = &r
		s.mu.Unlock()
	})
	if err != nil {
		return err
	}
	return taskErr
}

// applyOn adds each entry's score to its player, creating absent players
// at zero first. The winner is the player at position 1.
func (s *Service) applyOn(board map[string]int, r ranking.Ranking) {
	for _, e := range r.Entries {
		board[e.Name] += s.calc.Score(e.Position, r.TotalPlayers, e.Position == 1)
	}
}

// revertOn subtracts the exact score each entry earned under r's own field
// size. Players whose balance nets to zero are pruned so reverted noise does
// not linger on the board.
func (s *Service) revertOn(board map[string]int, r ranking.Ranking) {
	for _, e := range r.Entries {
		cur, ok := board[e.Name]
		if !ok {
			continue
		}
		next := cur - s.calc.Score(e.Position, r.TotalPlayers, e.Position == 1)
		if next == 0 {
			delete(board, e.Name)
			continue
		}
		board[e.Name] = next
	}
}

// RemovePlayer deletes a player outright, regardless of balance. Exact
// match first, then case-insensitive.
func (s *Service) RemovePlayer(ctx context.Context, name string) (BoardEntry, error) {
	rows, err := s.RemovePlayers(ctx, []string{name})
	if err != nil {
		return BoardEntry{}, err
	}
	if len(rows) == 0 {
		return BoardEntry{}, ErrPlayerNotFound
	}
	return rows[0], nil
}

// RemovePlayers deletes several players in one persisted step. Names that
// match nothing are skipped; the removed players and their final balances
// are returned.
func (s *Service) RemovePlayers(ctx context.Context, names []string) ([]BoardEntry, error) {
	var (
		removed []BoardEntry
		taskErr error
	)
	err := s.tasks.Do(ctx, func() {
		taskErr = s.mutate(ctx, func(board map[string]int) {
			for _, name := range names {
				key, ok := resolveName(board, name)
				if !ok {
					continue
				}
				removed = append(removed, BoardEntry{Name: key, Bounty: board[key]})
				delete(board, key)
			}
		})
		if taskErr != nil {
			removed = nil
		}
	})
	if err != nil {
		return nil, err
	}
	if taskErr != nil {
		return nil, taskErr
	}

	for _, row := range removed {
		s.logger.Info(ctx, "player removed",
			logger.String("player", row.Name),
			logger.Int("bounty", row.Bounty),
		)
	}
	return removed, nil
}

// Reset clears the whole board and persists the empty mapping.
func (s *Service) Reset(ctx context.Context) error {
	var taskErr error
	err := s.tasks.Do(ctx, func() {
		taskErr = s.mutate(ctx, func(board map[string]int) {
			for name := range board {
				delete(board, name)
			}
		})
		if taskErr != nil {
			return
		}
		s.mu.Lock()
		s.lastGame = nil
		s.mu.Unlock()
	})
	if err != nil {
		return err
	}
	if taskErr != nil {
		return taskErr
	}

	metrics.RecordReset()
	s.logger.Info(ctx, "bounty board reset")
	return nil
}

// resolveName finds the stored key for name: exact match first, then the
// first case-insensitive match.
func resolveName(board map[string]int, name string) (string, bool) {
	if _, ok := board[name]; ok {
		return name, true
	}
	key := strings.ToLower(name)
	for stored := range board {
		if strings.ToLower(stored) == key {
			return stored, true
		}
	}
	return "", false
}

func cloneBoard(board map[string]int) map[string]int {
	out := make(map[string]int, len(board))
	for k, v := range board {
		out[k] = v
	}
	return out
}
