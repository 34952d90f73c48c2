// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/marblehq/bountyboard/internal/app"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/internal/render"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit runs the screenshot pipeline and applies the result.
	Submit(ctx context.Context, images [][]byte) (service.SubmitResult, error)

	// CorrectLastGame edits and reapplies the most recent game.
	CorrectLastGame(ctx context.Context, remove []string) (service.CorrectionResult, error)

	// Read operations expose bounty board data.
	Leaderboard(ctx context.Context, limit int) []service.BoardEntry
	Bounty(ctx context.Context, name string) (service.BoardEntry, error)
	LastGame(ctx context.Context) (ranking.Ranking, error)
	Score(position, totalPlayers int, winner bool) int

	// Administrative operations.
	RemovePlayer(ctx context.Context, name string) (service.BoardEntry, error)
	RemovePlayers(ctx context.Context, names []string) ([]service.BoardEntry, error)
	Reset(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	submitHandler      *SubmitHandler
	leaderboardHandler *LeaderboardHandler
	bountyHandler      *BountyHandler
	adminHandler       *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, renderer *render.Renderer, maxLeaderboardLimit, pageSize int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		submitHandler:      NewSubmitHandler(deps, renderer),
		leaderboardHandler: NewLeaderboardHandler(deps, renderer, maxLeaderboardLimit, pageSize),
		bountyHandler:      NewBountyHandler(deps),
		adminHandler:       NewAdminHandler(deps, renderer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/submit", MetricsMiddleware(s.submitHandler.HandleSubmit, "submit"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/bounty/", MetricsMiddleware(s.bountyHandler.HandleGetBounty, "bounty"))
	mux.HandleFunc("/last-game", MetricsMiddleware(s.adminHandler.HandleGetLastGame, "last_game"))
	mux.HandleFunc("/last-game/corrections", MetricsMiddleware(s.adminHandler.HandlePostCorrection, "corrections"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.adminHandler.HandleDeletePlayer, "players"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.adminHandler.HandleReset, "reset"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
