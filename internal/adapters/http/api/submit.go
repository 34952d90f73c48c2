// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	service "github.com/marblehq/bountyboard/internal/app"
	"github.com/marblehq/bountyboard/internal/render"
)

// Upload limits for screenshot submissions.
const (
	maxUploadBytes   = 32 << 20 // whole multipart form
	screenshotsField = "screenshots"
)

// Image extensions accepted for screenshot uploads.
var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// SubmitDependencies defines the interface for submission processing.
type SubmitDependencies interface {
	Submit(ctx context.Context, images [][]byte) (service.SubmitResult, error)
	Leaderboard(ctx context.Context, limit int) []service.BoardEntry
	Score(position, totalPlayers int, winner bool) int
}

// SubmitHandler handles screenshot submissions.
type SubmitHandler struct {
	deps     SubmitDependencies
	renderer *render.Renderer
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps SubmitDependencies, renderer *render.Renderer) *SubmitHandler {
	return &SubmitHandler{deps: deps, renderer: renderer}
}

// submitResponse mirrors the response schema for POST /submit: the applied
// submission plus the rendered game-result and updated leaderboard tables.
type submitResponse struct {
	service.SubmitResult
	ResultMessages      []string `json:"result_messages"`
	LeaderboardMessages []string `json:"leaderboard_messages"`
}

// HandleSubmit handles POST /submit requests carrying one or more screenshot
// files in the "screenshots" multipart field.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File[screenshotsField]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%s: %w: no files in field %q", op, ErrBadRequest, screenshotsField))
		return
	}

	images := make([][]byte, 0, len(files))
	for _, fh := range files {
		data, err := readScreenshot(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unsupported_image", fmt.Errorf("%s: %w", op, err))
			return
		}
		images = append(images, data)
	}

	res, err := h.deps.Submit(r.Context(), images)
	switch {
	case errors.Is(err, service.ErrNoScreenshots), errors.Is(err, service.ErrTooManyScreenshots):
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	case errors.Is(err, service.ErrAllScreenshotsFailed):
		writeJSON(w, http.StatusUnprocessableEntity, submitResponse{SubmitResult: res})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		SubmitResult:        res,
		ResultMessages:      h.renderer.GameResults(res.Ranking.TotalPlayers, resultRows(h.deps, res)),
		LeaderboardMessages: h.renderer.Leaderboard(boardRows(h.deps.Leaderboard(r.Context(), 0))),
	})
}

// readScreenshot validates and loads one uploaded file. The extension check
// comes first; the sniffed content type backs it up for extensionless names.
func readScreenshot(fh *multipart.FileHeader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != "" && !allowedImageExt[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if ext == "" && !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, fh.Filename)
	}
	return data, nil
}

// resultRows shapes a submission result for rendering.
func resultRows(deps SubmitDependencies, res service.SubmitResult) []render.ResultRow {
	rows := make([]render.ResultRow, 0, len(res.Ranking.Entries))
	for _, e := range res.Ranking.Entries {
		winner := e.Position == 1
		rows = append(rows, render.ResultRow{
			Position: e.Position,
			Name:     e.Name,
			Bounty:   deps.Score(e.Position, res.Ranking.TotalPlayers, winner),
			Winner:   winner,
		})
	}
	return rows
}
