// Package textnorm canonicalizes OCR text so that strings differing only by
// known character confusions compare equal.
//
// The engine routinely misreads i/I/l/1 as one another, 0 as o, and 5 as s.
// Collapsing every member of a confusion class onto one representative lets a
// plain substring test absorb those misreads on both sides of the comparison.
package textnorm

import "strings"

// Normalize lowercases s and collapses the confusion classes
// {i, l, 1} -> i, {0} -> o and {5} -> s. The substitution is context-free,
// locale-independent and idempotent.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'l', '1':
			return 'i'
		case '0':
			return 'o'
		case '5':
			return 's'
		}
		return r
	}, strings.ToLower(s))
}

// ContainsKeyword reports whether keyword occurs inside text after both are
// normalized. Single-character substitutions within the confusion classes are
// absorbed; insertions, deletions and transpositions are not.
func ContainsKeyword(text, keyword string) bool {
	return strings.Contains(Normalize(text), Normalize(keyword))
}

// MatchesAny reports whether any of the keywords occurs inside text.
func MatchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if ContainsKeyword(text, kw) {
			return true
		}
	}
	return false
}
