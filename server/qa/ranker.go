package qa

import (
	"context"
	"log/slog"
	"sort"
)

// PrefilterSize bounds how many semantically-closest entries get the
// full keyword scoring pass. True matches are expected inside this
// window, so it caps per-query cost on large corpora without hurting
// recall.
const PrefilterSize = 10

// Embedder produces the query-time vector. It must be the same model
// used to build the corpus index, or dot products are meaningless.
type Embedder interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
}

// CandidateMatch is one scored corpus entry with per-signal diagnostics.
type CandidateMatch struct {
	Index         int
	Question      string
	SemanticScore float64
	KeywordScore  float64
	CombinedScore float64
}

// Ranker scores a query against the corpus snapshot and returns a
// shortlist ordered by combined score.
type Ranker struct {
	embedder Embedder
	weights  Weights
}

// NewRanker builds a ranker with the given embedder and score weights.
func NewRanker(embedder Embedder, weights Weights) *Ranker {
	return &Ranker{embedder: embedder, weights: weights}
}

// Rank embeds the normalized query, prefilters the corpus to the
// semantically closest entries, keyword-scores those, and returns them
// ordered by combined score descending with corpus order breaking ties.
//
// An empty or unindexed snapshot, or an embedding failure, yields an
// empty shortlist so the caller falls through to its keyword and
// generative paths.
func (r *Ranker) Rank(ctx context.Context, normalizedQuery string, snapshot *Snapshot) []CandidateMatch {
	if !snapshot.Indexed() {
		return nil
	}
	if r.embedder == nil {
		return nil
	}

	queryVector, err := r.embedder.Embedding(ctx, normalizedQuery)
	if err != nil {
		slog.WarnContext(ctx, "query embedding failed, skipping semantic ranking", "error", err)
		return nil
	}

	type semanticHit struct {
		index int
		score float64
	}
	hits := make([]semanticHit, snapshot.Len())
	for i := range hits {
		hits[i] = semanticHit{index: i, score: dotProduct(snapshot.embeddings[i], queryVector)}
	}

	// Stable sort keeps corpus order for equal semantic scores.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})
	if len(hits) > PrefilterSize {
		hits = hits[:PrefilterSize]
	}

	candidates := make([]CandidateMatch, 0, len(hits))
	for _, hit := range hits {
		question := snapshot.Pair(hit.index).Question
		keywordScore := KeywordSimilarity(normalizedQuery, question)
		candidates = append(candidates, CandidateMatch{
			Index:         hit.index,
			Question:      question,
			SemanticScore: hit.score,
			KeywordScore:  keywordScore,
			CombinedScore: r.weights.Combine(hit.score, keywordScore),
		})
	}

	// Semantic order was only a prefilter; the shortlist is ordered by
	// combined score, ties resolved by corpus position.
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].CombinedScore != candidates[b].CombinedScore {
			return candidates[a].CombinedScore > candidates[b].CombinedScore
		}
		return candidates[a].Index < candidates[b].Index
	})
	return candidates
}
