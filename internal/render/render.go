// Package render formats rankings and leaderboards as fixed-width text
// tables sized for a transport with a hard per-message character limit.
//
// Chunk boundaries fall only between rows, and every chunk carries its own
// title and column header so each one is independently well-formed.
package render

import (
	"fmt"
	"strings"
)

// DefaultMessageLimit matches the transport's hard per-message cap.
const DefaultMessageLimit = 2000

// headroom keeps rendered chunks comfortably under the limit so the
// platform layer can add small decorations without re-chunking.
const headroom = 100

// BoardRow is one leaderboard line: rank, player and signed bounty.
type BoardRow struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Bounty int    `json:"bounty"`
}

// ResultRow is one game-result line: finishing position, player and the
// bounty that position earned.
type ResultRow struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Bounty   int    `json:"bounty"`
	Winner   bool   `json:"winner"`
}

// Renderer formats tables under a message limit.
type Renderer struct {
	limit int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithMessageLimit overrides the per-message character cap.
func WithMessageLimit(limit int) Option {
	return func(r *Renderer) {
		if limit > headroom {
			r.limit = limit
		}
	}
}

// New creates a Renderer with configuration options.
func New(opts ...Option) *Renderer {
	r := &Renderer{limit: DefaultMessageLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GameResults renders a game result as one or more messages.
func (r *Renderer) GameResults(totalPlayers int, rows []ResultRow) []string {
	title := fmt.Sprintf("RACE RESULTS (total players: %d)", totalPlayers)
	contTitle := "RACE RESULTS (continued)"
	header := fmt.Sprintf("%-5s %-20s %10s", "Pos", "Player", "Bounty")

	lines := make([]string, len(rows))
	for i, row := range rows {
		marker := " "
		if row.Winner {
			marker = "*"
		}
		lines[i] = fmt.Sprintf("%s%-4d %-20s %+10d", marker, row.Position, row.Name, row.Bounty)
	}
	return r.chunk(title, contTitle, header, lines, "no results")
}

// Leaderboard renders the full leaderboard as one or more messages.
func (r *Renderer) Leaderboard(rows []BoardRow) []string {
	title := "BOUNTY LEADERBOARD"
	contTitle := "BOUNTY LEADERBOARD (continued)"
	header := fmt.Sprintf("%-5s %-20s %10s", "Rank", "Player", "Bounty")

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = fmt.Sprintf("%-5d %-20s %+10d", row.Rank, row.Name, row.Bounty)
	}
	return r.chunk(title, contTitle, header, lines, "no bounties recorded yet")
}

// chunk assembles messages from rows, starting a fresh titled block whenever
// the next row would push the current message over the limit.
func (r *Renderer) chunk(title, contTitle, header string, lines []string, emptyNote string) []string {
	rule := strings.Repeat("-", len(header))
	blockHead := func(t string) string {
		return t + "\n\n" + header + "\n" + rule + "\n"
	}

	if len(lines) == 0 {
		return []string{title + "\n\n" + emptyNote}
	}

	var messages []string
	var b strings.Builder
	b.WriteString(blockHead(title))

	for _, line := range lines {
		if b.Len()+len(line)+1 > r.limit-headroom {
			messages = append(messages, strings.TrimRight(b.String(), "\n"))
			b.Reset()
			b.WriteString(blockHead(contTitle))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	messages = append(messages, strings.TrimRight(b.String(), "\n"))
	return messages
}
