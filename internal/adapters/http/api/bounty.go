// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/marblehq/bountyboard/internal/app"
)

// BountyDependencies defines the interface for single-player lookups.
type BountyDependencies interface {
	Bounty(ctx context.Context, name string) (service.BoardEntry, error)
}

// BountyHandler handles per-player bounty requests.
type BountyHandler struct {
	deps BountyDependencies
}

// NewBountyHandler creates a new bounty handler.
func NewBountyHandler(deps BountyDependencies) *BountyHandler {
	return &BountyHandler{deps: deps}
}

// HandleGetBounty handles GET /bounty/{player} requests.
func (h *BountyHandler) HandleGetBounty(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_bounty"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/bounty/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: player name", op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Bounty(r.Context(), name)
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
