package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marblehq/bountyboard/internal/domain/merge"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/pkg/logger"
	"github.com/marblehq/bountyboard/pkg/metrics"
)

// ScreenshotFailure records why one screenshot of a submission was dropped.
type ScreenshotFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	SubmissionID string              `json:"submission_id"`
	Ranking      ranking.Ranking     `json:"ranking"`
	Overlaps     int                 `json:"overlaps"`
	Failures     []ScreenshotFailure `json:"failures,omitempty"`
}

// Submit runs the full pipeline over one to maxScreenshots images:
// recognition and parsing per screenshot, merge over the ordered survivors,
// then an all-or-nothing ledger application. Individual screenshot failures
// are tolerated and reported; a submission where every screenshot fails
// leaves the ledger untouched.
func (s *Service) Submit(ctx context.Context, images [][]byte) (SubmitResult, error) {
	if len(images) == 0 {
		return SubmitResult{}, ErrNoScreenshots
	}
	if len(images) > s.maxScreenshots {
		return SubmitResult{}, fmt.Errorf("%w: got %d, limit %d", ErrTooManyScreenshots, len(images), s.maxScreenshots)
	}

	id := uuid.NewString()
	log := s.logger
	log.Info(ctx, "processing submission",
		logger.String("submission", id),
		logger.Int("screenshots", len(images)),
	)

	var parsed []ranking.Ranking
	var failures []ScreenshotFailure
	for i, img := range images {
		r, err := s.processScreenshot(ctx, img)
		if err != nil {
			metrics.RecordScreenshotFailed()
			failures = append(failures, ScreenshotFailure{Index: i, Reason: err.Error()})
			log.Warn(ctx, "screenshot dropped",
				logger.String("submission", id),
				logger.Int("index", i),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordScreenshotProcessed()
		parsed = append(parsed, r)
	}

	if len(parsed) == 0 {
		metrics.RecordSubmissionFailed()
		return SubmitResult{SubmissionID: id, Failures: failures}, ErrAllScreenshotsFailed
	}

	merged, overlaps, err := merge.Rankings(parsed)
	if err != nil {
		metrics.RecordSubmissionFailed()
		return SubmitResult{}, fmt.Errorf("merge: %w", err)
	}
	metrics.RecordMergeOverlaps(overlaps)

	if err := s.applyRanking(ctx, merged); err != nil {
		metrics.RecordSubmissionFailed()
		return SubmitResult{}, err
	}

	metrics.RecordSubmission()
	log.Info(ctx, "submission applied",
		logger.String("submission", id),
		logger.Int("players", merged.TotalPlayers),
		logger.Int("overlaps", overlaps),
	)
	return SubmitResult{
		SubmissionID: id,
		Ranking:      merged,
		Overlaps:     overlaps,
		Failures:     failures,
	}, nil
}

// processScreenshot recognizes and parses one image. Recognition gets its
// own deadline so a stuck engine call cannot stall the whole submission.
func (s *Service) processScreenshot(ctx context.Context, image []byte) (ranking.Ranking, error) {
	octx, cancel := context.WithTimeout(ctx, s.ocrTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.recognizer.Recognize(octx, image)
	metrics.ObserveOCRLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return ranking.Ranking{}, fmt.Errorf("recognize: %w", err)
	}

	r, err := s.parser.Parse(text)
	if err != nil {
		return ranking.Ranking{}, fmt.Errorf("parse: %w", err)
	}
	return r, nil
}

// CorrectionResult is the outcome of an edit of the last submitted game.
type CorrectionResult struct {
	Ranking ranking.Ranking `json:"ranking"`
	Removed []string        `json:"removed"`
}

// CorrectLastGame reverts the most recently applied ranking, drops the given
// names, renumbers the rest from 1 and reapplies the result. The corrected
// ranking replaces the last-game slot. An empty removal set still performs
// the revert-reapply cycle, which nets to zero on every balance.
func (s *Service) CorrectLastGame(ctx context.Context, remove []string) (CorrectionResult, error) {
	var (
		result  CorrectionResult
		taskErr error
	)
	err := s.tasks.Do(ctx, func() {
		s.mu.RLock()
		last := s.lastGame
		s.mu.RUnlock()
		if last == nil {
			taskErr = ErrNoLastGame
			return
		}

		corrected := last.WithoutNames(remove)
		taskErr = s.mutate(ctx, func(board map[string]int) {
			s.revertOn(board, *last)
			s.applyOn(board, corrected)
		})
		if taskErr != nil {
			return
		}

		s.mu.Lock()
		s.lastGame = &corrected
		s.mu.Unlock()
		result = CorrectionResult{Ranking: corrected, Removed: remove}
	})
	if err != nil {
		return CorrectionResult{}, err
	}
	if taskErr != nil {
		return CorrectionResult{}, taskErr
	}

	metrics.RecordCorrection()
	s.logger.Info(ctx, "last game corrected",
		logger.Int("removed", len(remove)),
		logger.Int("players", result.Ranking.TotalPlayers),
	)
	return result, nil
}
