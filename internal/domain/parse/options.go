package parse

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithHeaderKeywords replaces the set of column-title keywords that mark
// header rows and non-name tokens.
func WithHeaderKeywords(keywords []string) Option {
	return func(p *Parser) {
		if len(keywords) > 0 {
			p.headerKeywords = keywords
		}
	}
}

// WithIgnoreWords replaces the set of known OCR artifacts that must never be
// accepted as player names.
func WithIgnoreWords(words []string) Option {
	return func(p *Parser) {
		if len(words) > 0 {
			p.ignoreWords = toSet(words)
		}
	}
}
