package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"policy question", "What is the leave policy?", []string{"leave", "policy"}},
		{"duplicates collapse", "policy policy policy", []string{"policy"}},
		{"typo corrected before lookup", "the pollicy on wfh", []string{"policy", "work", "home"}},
		{"greeting vocabulary", "hello, how are you", []string{"hello", "how", "are", "you"}},
		{"no domain terms", "purple elephant spaceship", nil},
		{"empty input", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.input)
			assert.Len(t, got, len(tt.want))
			for _, term := range tt.want {
				assert.True(t, got.Contains(term), "missing %q", term)
			}
		})
	}
}

func TestPolicyTermsAreDomainVocabulary(t *testing.T) {
	for term := range PolicyTerms {
		assert.True(t, DomainVocabulary.Contains(term), "policy term %q not in vocabulary", term)
	}
}

func TestTermSetIntersect(t *testing.T) {
	a := newTermSet("leave", "policy", "hello")
	b := newTermSet("policy", "attendance")

	got := a.Intersect(b)
	require.Len(t, got, 1)
	assert.True(t, got.Contains("policy"))

	assert.Empty(t, a.Intersect(newTermSet()))
}
