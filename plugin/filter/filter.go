// Package filter screens chat input for inappropriate language before
// it reaches the resolver.
package filter

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Filter holds a lower-cased block list. An empty filter lets
// everything through.
type Filter struct {
	words []string
}

// New builds a filter from an explicit word list.
func New(words []string) *Filter {
	lowered := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			lowered = append(lowered, word)
		}
	}
	return &Filter{words: lowered}
}

// NewFromFile loads the block list from a JSON array of strings. A
// missing file yields an empty filter, not an error: the filter is an
// optional safeguard, never a startup dependency.
func NewFromFile(path string) (*Filter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("bad-words list not found, language filter disabled", "path", path)
			return New(nil), nil
		}
		return nil, errors.Wrap(err, "read bad-words list")
	}

	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, errors.Wrap(err, "parse bad-words list")
	}
	return New(words), nil
}

// ContainsBadLanguage reports whether text contains any blocked word.
func (f *Filter) ContainsBadLanguage(text string) bool {
	if f == nil || len(f.words) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range f.words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// Size returns the number of blocked words.
func (f *Filter) Size() int {
	if f == nil {
		return 0
	}
	return len(f.words)
}
