// Package merge combines parsed screenshots of one event into a single
// continuous ranking.
//
// Screenshots of a long leaderboard arrive as successive, overlapping
// scrolls. Players present in an earlier screenshot anchor the continuation:
// they are skipped, and every genuinely new player continues the numbering
// from the highest position assigned so far.
package merge

import (
	"github.com/marblehq/bountyboard/internal/domain/dedupe"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
)

// Rankings merges the ordered screenshots into one ranking. The first
// ranking is taken verbatim; entries of subsequent rankings are either
// recognized as overlap (case-insensitive name match) and skipped, or
// appended with the next free position. The returned overlap count is the
// number of skipped entries.
func Rankings(rankings []ranking.Ranking) (ranking.Ranking, int, error) {
	if len(rankings) == 0 {
		return ranking.Ranking{}, 0, ErrNoRankings
	}
	if len(rankings) == 1 {
		return rankings[0], 0, nil
	}

	seen := dedupe.NewNames()
	merged := make([]ranking.Entry, 0, len(rankings[0].Entries))
	for _, e := range rankings[0].Entries {
		seen.SeenAndRecord(e.Name)
		merged = append(merged, e)
	}

	overlaps := 0
	for _, r := range rankings[1:] {
		for _, e := range r.Entries {
			if seen.SeenAndRecord(e.Name) {
				overlaps++
				continue
			}
			merged = append(merged, ranking.Entry{Name: e.Name, Position: len(merged) + 1})
		}
	}

	out, err := ranking.New(merged)
	if err != nil {
		return ranking.Ranking{}, 0, err
	}
	return out, overlaps, nil
}
