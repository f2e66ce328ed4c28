// Package extract holds pure string helpers the ranking pipeline depends on:
// tokenization, years-of-experience parsing, and snippet selection. Keeping
// them isolated keeps the scoring contracts free of parsing details.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// yearsRe matches "5 years", "5+ years", "5 yrs".
var yearsRe = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

// Tokenize lowercases s and splits it into tokens. '#' and '+' stay inside
// tokens so "c#" and "c++" survive; all other punctuation separates.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '#' && r != '+'
	})
}

// TokenSet builds a membership set from tokens.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Years returns the first stated years-of-experience figure in s.
func Years(s string) (int, bool) {
	m := yearsRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxYears returns the largest stated years-of-experience figure in s.
func MaxYears(s string) (int, bool) {
	matches := yearsRe.FindAllStringSubmatch(strings.ToLower(s), -1)
	if matches == nil {
		return 0, false
	}
	best := 0
	for _, m := range matches {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return best, true
}

// Snippet returns the sentences of text that mention any query token, joined
// and truncated to maxLen. Falls back to a plain prefix of text when nothing
// matches.
func Snippet(text string, queryTokens []string, maxLen int) string {
	if text == "" {
		return ""
	}
	if maxLen <= 0 {
		maxLen = 300
	}

	var relevant []string
	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)
		for _, tok := range queryTokens {
			if tok != "" && strings.Contains(lower, tok) {
				relevant = append(relevant, strings.TrimSpace(sentence))
				break
			}
		}
	}

	joined := strings.Join(relevant, ". ")
	if joined == "" {
		joined = text
	}
	if len(joined) > maxLen {
		// Back up to a rune boundary so multi-byte text is never split.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(joined[cut]) {
			cut--
		}
		joined = joined[:cut] + "..."
	}
	return joined
}
