// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	service "github.com/marblehq/bountyboard/internal/app"
	"github.com/marblehq/bountyboard/internal/render"
)

// LeaderboardDependencies defines the interface for leaderboard reads.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, limit int) []service.BoardEntry
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	renderer *render.Renderer
	maxLimit int
	pageSize int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, renderer *render.Renderer, maxLimit, pageSize int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		renderer: renderer,
		maxLimit: maxLimit,
		pageSize: pageSize,
	}
}

// leaderboardResponse mirrors the response schema for GET /leaderboard.
type leaderboardResponse struct {
	Entries    []service.BoardEntry `json:"entries"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	Messages   []string             `json:"messages"`
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N&page=M requests.
// Both parameters are optional: limit defaults to the configured cap and
// page defaults to the first page.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := h.maxLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: limit", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: limit above %d", op, ErrBadRequest, h.maxLimit))
			return
		}
		limit = n
	}

	page := 0
	if s := r.URL.Query().Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: page", op, ErrBadRequest))
			return
		}
		page = n - 1
	}

	entries := h.deps.Leaderboard(r.Context(), limit)
	pageRows, totalPages := render.Page(entries, h.pageSize, page)

	writeJSON(w, http.StatusOK, leaderboardResponse{
		Entries:    pageRows,
		Page:       min(page, totalPages-1) + 1,
		TotalPages: totalPages,
		Messages:   h.renderer.Leaderboard(boardRows(pageRows)),
	})
}

// boardRows shapes leaderboard entries for rendering.
func boardRows(entries []service.BoardEntry) []render.BoardRow {
	rows := make([]render.BoardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, render.BoardRow{Rank: e.Rank, Name: e.Name, Bounty: e.Bounty})
	}
	return rows
}
