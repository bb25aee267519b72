package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordSimilaritySelf(t *testing.T) {
	// Any text with domain terms is identical to itself.
	assert.Equal(t, 1.0, KeywordSimilarity("what is the leave policy", "what is the leave policy"))

	// No domain terms on either side scores zero, not NaN.
	assert.Equal(t, 0.0, KeywordSimilarity("purple elephant", "purple elephant"))
}

func TestKeywordSimilarityPartialOverlap(t *testing.T) {
	// {leave, policy} vs {attendance, policy}: 1 shared of 3 total.
	got := KeywordSimilarity("leave policy", "attendance policy")
	assert.InDelta(t, 1.0/3.0, got, 1e-9)
}

func TestKeywordSimilarityEmptySide(t *testing.T) {
	assert.Equal(t, 0.0, KeywordSimilarity("leave policy", "purple elephant"))
	assert.Equal(t, 0.0, KeywordSimilarity("", "leave policy"))
}

func TestCombineBounds(t *testing.T) {
	w := DefaultWeights
	cases := []struct{ semantic, keyword float64 }{
		{0.9, 0.1},
		{0.2, 0.8},
		{0.5, 0.5},
		{0.0, 1.0},
	}
	for _, c := range cases {
		got := w.Combine(c.semantic, c.keyword)
		lo, hi := c.semantic, c.keyword
		if lo > hi {
			lo, hi = hi, lo
		}
		assert.GreaterOrEqual(t, got, lo)
		assert.LessOrEqual(t, got, hi)
	}

	assert.InDelta(t, 0.5, w.Combine(0.9, 0.1), 1e-9)
}

func TestCombineZeroWeights(t *testing.T) {
	assert.Equal(t, 0.0, Weights{}.Combine(0.9, 0.9))
}

func TestDotProduct(t *testing.T) {
	assert.InDelta(t, 1.0, dotProduct([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, dotProduct([]float32{1, 0}, []float32{0, 1}), 1e-6)

	// Length mismatch is a degraded zero, not a panic.
	assert.Equal(t, 0.0, dotProduct([]float32{1, 0}, []float32{1}))
}
