// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/marblehq/bountyboard/internal/app"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/internal/render"
)

// AdminDependencies defines the interface for board administration.
type AdminDependencies interface {
	CorrectLastGame(ctx context.Context, remove []string) (service.CorrectionResult, error)
	LastGame(ctx context.Context) (ranking.Ranking, error)
	Leaderboard(ctx context.Context, limit int) []service.BoardEntry
	Score(position, totalPlayers int, winner bool) int
	RemovePlayer(ctx context.Context, name string) (service.BoardEntry, error)
	RemovePlayers(ctx context.Context, names []string) ([]service.BoardEntry, error)
	Reset(ctx context.Context) error
}

// AdminHandler handles correction and board administration requests.
type AdminHandler struct {
	deps     AdminDependencies
	renderer *render.Renderer
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{deps: deps, renderer: renderer}
}

// correctionRequest mirrors the request schema for POST /last-game/corrections.
type correctionRequest struct {
	Remove []string `json:"remove"`
}

// correctionResponse mirrors the response schema for POST /last-game/corrections:
// the corrected game plus the rendered result and updated leaderboard tables.
type correctionResponse struct {
	service.CorrectionResult
	ResultMessages      []string `json:"result_messages"`
	LeaderboardMessages []string `json:"leaderboard_messages"`
}

// HandlePostCorrection handles POST /last-game/corrections requests.
func (h *AdminHandler) HandlePostCorrection(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_correction"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.CorrectLastGame(r.Context(), req.Remove)
	if err != nil {
		if errors.Is(err, service.ErrNoLastGame) {
			writeError(w, http.StatusNotFound, "no_last_game", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	writeJSON(w, http.StatusOK, correctionResponse{
		CorrectionResult:    res,
		ResultMessages:      h.renderer.GameResults(res.Ranking.TotalPlayers, correctionRows(h.deps, res.Ranking)),
		LeaderboardMessages: h.renderer.Leaderboard(boardRows(h.deps.Leaderboard(r.Context(), 0))),
	})
}

// HandleGetLastGame handles GET /last-game requests.
func (h *AdminHandler) HandleGetLastGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	last, err := h.deps.LastGame(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoLastGame) {
			writeError(w, http.StatusNotFound, "no_last_game", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// removalRequest mirrors the request schema for POST /players/removals.
type removalRequest struct {
	Names []string `json:"names"`
}

// removalResponse mirrors the response schema for POST /players/removals.
type removalResponse struct {
	Removed []service.BoardEntry `json:"removed"`
}

// HandleDeletePlayer handles DELETE /players/{player} and the bulk form
// POST /players/removals.
func (h *AdminHandler) HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_player"
	if r.URL.Path == "/players/removals" {
		h.handleBulkRemoval(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/players/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: player name", op, ErrBadRequest))
		return
	}
	entry, err := h.deps.RemovePlayer(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *AdminHandler) handleBulkRemoval(w http.ResponseWriter, r *http.Request) {
	const op = "api.bulk_removal"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req removalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: empty names", op, ErrBadRequest))
		return
	}
	removed, err := h.deps.RemovePlayers(r.Context(), req.Names)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{Removed: removed})
}

// HandleReset handles POST /reset requests.
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// correctionRows shapes a corrected ranking for rendering.
func correctionRows(deps AdminDependencies, r ranking.Ranking) []render.ResultRow {
	rows := make([]render.ResultRow, 0, len(r.Entries))
	for _, e := range r.Entries {
		winner := e.Position == 1
		rows = append(rows, render.ResultRow{
			Position: e.Position,
			Name:     e.Name,
			Bounty:   deps.Score(e.Position, r.TotalPlayers, winner),
			Winner:   winner,
		})
	}
	return rows
}
