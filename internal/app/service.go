// Package service owns the bounty board and orchestrates the
// screenshot-to-ranking pipeline: recognition, parsing, merging, scoring and
// ledger bookkeeping.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/marblehq/bountyboard/internal/adapters/ocr"
	"github.com/marblehq/bountyboard/internal/adapters/repository"
	"github.com/marblehq/bountyboard/internal/domain/bounty"
	"github.com/marblehq/bountyboard/internal/domain/parse"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/internal/taskq"
	"github.com/marblehq/bountyboard/pkg/logger"
	"github.com/marblehq/bountyboard/pkg/metrics"
)

// Default service configuration.
const (
	defaultMaxScreenshots = 5
	defaultOCRTimeout     = 30 * time.Second
	defaultQueueCapacity  = 64
	defaultDataFile       = "bounty_board.json"
)

// BoardEntry is one leaderboard row.
type BoardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Bounty int    `json:"bounty"`
}

// Service implements the bounty board operations. The board and the
// last-game slot are process-wide state; every mutation runs on the single
// task-queue runner, so there is exactly one writer. The RWMutex only
// shields concurrent readers from that writer.
type Service struct {
	mu       sync.RWMutex
	board    repository.Board
	lastGame *ranking.Ranking

	store      repository.Store
	recognizer ocr.Recognizer
	parser     *parse.Parser
	calc       *bounty.Calculator
	tasks      *taskq.Queue

	maxScreenshots int
	ocrTimeout     time.Duration
	queueCapacity  int

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		board:          repository.Board{},
		maxScreenshots: defaultMaxScreenshots,
		ocrTimeout:     defaultOCRTimeout,
		queueCapacity:  defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewJSONStore(defaultDataFile)
	}
	if s.recognizer == nil {
		s.recognizer = ocr.NewEngine()
	}
	if s.parser == nil {
		s.parser = parse.New()
	}
	if s.calc == nil {
		s.calc = bounty.NewCalculator()
	}
	return s
}

// Start loads the persisted board and launches the mutation runner.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	board, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrCorruptStore) {
			return err
		}
		// A corrupt store must not fail startup; start fresh and warn.
		s.logger.Warn(ctx, "bounty store unreadable, starting with an empty board", logger.Error(err))
		board = repository.Board{}
	}
	s.board = board

	s.tasks = taskq.New(taskq.WithCapacity(s.queueCapacity))
	s.tasks.Start(ctx)

	s.started = true
	metrics.UpdateLedgerPlayers(len(board))
	s.logger.Info(ctx, "bounty board service started",
		logger.Int("players", len(board)),
		logger.Int("maxScreenshots", s.maxScreenshots),
	)
	return nil
}

// Stop drains pending mutations and shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.tasks != nil {
		_ = s.tasks.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "bounty board service stopped")
}

// Leaderboard returns players sorted by bounty descending. Ties keep a
// stable, deterministic order (name ascending). A limit above zero caps the
// row count.
func (s *Service) Leaderboard(_ context.Context, limit int) []BoardEntry {
	s.mu.RLock()
	rows := make([]BoardEntry, 0, len(s.board))
	for name, b := range s.board {
		rows = append(rows, BoardEntry{Name: name, Bounty: b})
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bounty != rows[j].Bounty {
			return rows[i].Bounty > rows[j].Bounty
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Bounty looks a player up by exact name first, then case-insensitively.
func (s *Service) Bounty(ctx context.Context, name string) (BoardEntry, error) {
	for _, row := range s.Leaderboard(ctx, 0) {
		if row.Name == name {
			return row, nil
		}
	}
	key := strings.ToLower(name)
	for _, row := range s.Leaderboard(ctx, 0) {
		if strings.ToLower(row.Name) == key {
			return row, nil
		}
	}
	return BoardEntry{}, ErrPlayerNotFound
}

// LastGame returns the most recently applied ranking.
func (s *Service) LastGame(_ context.Context) (ranking.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastGame == nil {
		return ranking.Ranking{}, ErrNoLastGame
	}
	return *s.lastGame, nil
}

// Score exposes the calculator for rendering per-entry bounties.
func (s *Service) Score(position, totalPlayers int, winner bool) int {
	return s.calc.Score(position, totalPlayers, winner)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"players":        len(s.board),
		"maxScreenshots": s.maxScreenshots,
		"hasLastGame":    s.lastGame != nil,
	}
	if s.tasks != nil {
		stats["pendingMutations"] = s.tasks.Len()
	}
	if s.lastGame != nil {
		stats["lastGamePlayers"] = s.lastGame.TotalPlayers
	}
	return stats
}
