package qa

import (
	"regexp"
	"strings"
)

// Typo and greeting-elongation corrections applied before any scoring.
// Word-boundary anchored so "policyholder" is left alone.
var normalizeRules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bpollicy\b`), "policy"},
	{regexp.MustCompile(`\bwfh\b`), "work from home"},
	{regexp.MustCompile(`\bheyy+\b`), "hey"},
	{regexp.MustCompile(`\bhelloo+\b`), "hello"},
	{regexp.MustCompile(`\bhii+\b`), "hi"},
}

var (
	whitespaceRegexp  = regexp.MustCompile(`\s+`)
	punctuationRegexp = regexp.MustCompile(`[^\w\s\-]`)
)

// Normalize canonicalizes raw user text for matching: lower-case, fix
// known domain typos, collapse elongated greetings, strip punctuation
// except hyphens, and squeeze whitespace. Idempotent, never fails.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, rule := range normalizeRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	text = whitespaceRegexp.ReplaceAllString(text, " ")
	text = punctuationRegexp.ReplaceAllString(text, " ")
	text = whitespaceRegexp.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokenize splits already-normalized text into whitespace-separated tokens.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// tokenCount returns the number of whitespace-separated tokens.
func tokenCount(text string) int {
	return len(tokenize(text))
}
