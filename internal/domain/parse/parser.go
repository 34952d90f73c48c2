// Package parse turns raw OCR text from a results screen into a ranked list
// of player names.
//
// Rank is inferred purely from the line order of the first recognized name
// per line: the source screenshots encode position by vertical order, and
// numeral columns are too unreliable under OCR to trust. A strict pass
// favors precision; when it recognizes almost nothing, an aggressive
// fallback pass trades precision for recall.
package parse

import (
	"regexp"
	"strings"

	"github.com/marblehq/bountyboard/internal/domain/dedupe"
	"github.com/marblehq/bountyboard/internal/domain/ranking"
	"github.com/marblehq/bountyboard/internal/domain/textnorm"
)

// Parsing thresholds.
const (
	minLineLength  = 3 // lines shorter than this are OCR debris
	minNameLength  = 3
	minStrictNames = 2 // below this the strict pass is considered a miss
)

var (
	// tokenStripRE removes everything but word characters from a token.
	tokenStripRE = regexp.MustCompile(`[^0-9A-Za-z_]+`)
	// nameStripRE keeps word characters, spaces and hyphens in an accepted name.
	nameStripRE = regexp.MustCompile(`[^0-9A-Za-z_ -]+`)
	// usernameRE matches a plausible player name: letter first, then
	// letters, digits or underscores.
	usernameRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	// looseNameRE extracts name-shaped runs anywhere in a line for the
	// aggressive pass.
	looseNameRE = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_]{2,}`)

	digitRE = regexp.MustCompile(`[0-9]`)
)

// headerMarkers are the two keywords that identify the column-title row.
var headerMarkers = []string{"place", "player"}

// defaultHeaderKeywords are column titles seen on the results screens.
var defaultHeaderKeywords = []string{
	"place", "player", "time", "points", "damage",
	"wins", "races", "elimination", "name",
}

// defaultIgnoreWords are recurring OCR artifacts that look like names.
var defaultIgnoreWords = []string{"even", "dltc", "def", "juaz", "dne"}

// placementTokens are ordinal and status markers that precede names.
// IST is the usual misread of 1ST.
var placementTokens = map[string]struct{}{
	"1ST": {}, "2ND": {}, "3RD": {}, "DNF": {}, "IST": {},
}

// Parser extracts rankings from OCR text.
type Parser struct {
	headerKeywords []string
	ignoreWords    map[string]struct{}
}

// New constructs a Parser with configuration options.
func New(opts ...Option) *Parser {
	p := &Parser{
		headerKeywords: defaultHeaderKeywords,
		ignoreWords:    toSet(defaultIgnoreWords),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a ranking from raw OCR text. It returns ErrNoEntries when
// neither the strict nor the aggressive pass recognizes a single player;
// callers must treat that as "could not parse" and leave all state alone.
func (p *Parser) Parse(raw string) (ranking.Ranking, error) {
	lines := cleanLines(raw)

	names := p.strictPass(lines)
	if len(names) < minStrictNames {
		names = p.aggressivePass(lines)
	}
	if len(names) == 0 {
		return ranking.Ranking{}, ErrNoEntries
	}
	return ranking.FromNames(names)
}

// strictPass accepts at most one name per line, requiring the full token to
// look like a username after punctuation stripping.
func (p *Parser) strictPass(lines []string) []string {
	var names []string
	seen := dedupe.NewNames()

	for _, line := range lines {
		// The column-title row never contributes a position.
		if textnorm.MatchesAny(line, headerMarkers) {
			continue
		}
		// A line of header words with no digit is a header remnant.
		if textnorm.MatchesAny(line, p.headerKeywords) && !digitRE.MatchString(line) {
			continue
		}

		var candidate string
		for _, token := range strings.Fields(line) {
			clean := tokenStripRE.ReplaceAllString(token, "")
			if _, ord := placementTokens[strings.ToUpper(clean)]; ord {
				continue
			}
			if textnorm.MatchesAny(clean, p.headerKeywords) {
				continue
			}
			if _, skip := p.ignoreWords[strings.ToLower(clean)]; skip {
				continue
			}
			if len(clean) >= minNameLength && usernameRE.MatchString(clean) {
				candidate = cleanName(clean)
				break
			}
		}

		if len(candidate) >= minNameLength && !seen.SeenAndRecord(candidate) {
			names = append(names, candidate)
		}
	}
	return names
}

// aggressivePass rescans every line with a looser pattern, accepting the
// first qualifying run per line. Used only when the strict pass found too
// little signal.
func (p *Parser) aggressivePass(lines []string) []string {
	var names []string
	seen := dedupe.NewNames()

	for _, line := range lines {
		if textnorm.MatchesAny(line, headerMarkers) {
			continue
		}
		for _, match := range looseNameRE.FindAllString(line, -1) {
			if textnorm.MatchesAny(match, p.headerKeywords) {
				continue
			}
			if _, skip := p.ignoreWords[strings.ToLower(match)]; skip {
				continue
			}
			if seen.SeenAndRecord(match) {
				continue
			}
			names = append(names, match)
			break
		}
	}
	return names
}

// cleanLines splits raw OCR output into trimmed lines, dropping blanks and
// fragments too short to carry a name.
func cleanLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= minLineLength {
			out = append(out, line)
		}
	}
	return out
}

// cleanName strips residual punctuation from an accepted name and collapses
// internal whitespace.
func cleanName(name string) string {
	name = nameStripRE.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}
