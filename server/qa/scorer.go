package qa

// Weights controls the semantic/keyword blend of the combined score.
type Weights struct {
	Semantic float64
	Keyword  float64
}

// DefaultWeights blends both signals equally.
var DefaultWeights = Weights{Semantic: 0.5, Keyword: 0.5}

// Combine returns the weighted average of the two similarity signals.
func (w Weights) Combine(semantic, keyword float64) float64 {
	total := w.Semantic + w.Keyword
	if total == 0 {
		return 0
	}
	return (semantic*w.Semantic + keyword*w.Keyword) / total
}

// KeywordSimilarity scores two texts by the Jaccard similarity of their
// domain-keyword sets. Returns 0 when either set is empty so two
// strings with no HR terms at all never look related.
func KeywordSimilarity(textA, textB string) float64 {
	keywordsA := ExtractKeywords(textA)
	keywordsB := ExtractKeywords(textB)
	if len(keywordsA) == 0 || len(keywordsB) == 0 {
		return 0
	}

	intersection := len(keywordsA.Intersect(keywordsB))
	union := len(keywordsA) + len(keywordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// dotProduct is the semantic score between two embedding vectors. The
// provider returns normalized vectors, so the dot product is cosine
// similarity. Length-mismatched vectors score 0.
func dotProduct(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
