package qa

import (
	"context"
	"log/slog"

	"github.com/orgai/hr-assistant/store"
)

// BatchEmbedder embeds the whole corpus in one provider call at
// startup. *ai.Provider satisfies it.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbeddingModel() string
}

// EmbeddingStore persists corpus embeddings across restarts. The
// sqlite driver reports not-supported, in which case the indexer just
// re-embeds every time.
type EmbeddingStore interface {
	ListQAEmbeddings(ctx context.Context, find *store.FindQAEmbedding) ([]*store.QAEmbedding, error)
	UpsertQAEmbedding(ctx context.Context, upsert *store.QAEmbedding) (*store.QAEmbedding, error)
}

// Indexer builds corpus snapshots: it warm-starts from persisted
// embeddings, embeds only the misses, and writes new vectors back.
type Indexer struct {
	embedder BatchEmbedder
	storage  EmbeddingStore
}

// NewIndexer builds an indexer. storage may be nil to disable the
// warm-start cache; embedder may be nil to build unindexed snapshots.
func NewIndexer(embedder BatchEmbedder, storage EmbeddingStore) *Indexer {
	return &Indexer{embedder: embedder, storage: storage}
}

// BuildSnapshot embeds every corpus question and returns a snapshot
// with a complete index, or an unindexed snapshot when embedding is
// unavailable or fails. It never returns nil and never fails the boot.
func (ix *Indexer) BuildSnapshot(ctx context.Context, pairs []QAPair) *Snapshot {
	if len(pairs) == 0 || ix.embedder == nil {
		return NewSnapshot(pairs, nil)
	}

	cached := ix.loadCached(ctx)

	embeddings := make([][]float32, len(pairs))
	var missing []int
	for i, pair := range pairs {
		if vector, ok := cached[pair.Question]; ok {
			embeddings[i] = vector
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 {
		questions := make([]string, len(missing))
		for i, idx := range missing {
			questions[i] = pairs[idx].Question
		}

		vectors, err := ix.embedder.EmbedBatch(ctx, questions)
		if err != nil {
			slog.WarnContext(ctx, "corpus embedding failed, resolver degrades to keyword matching",
				"missing", len(missing), "error", err)
			return NewSnapshot(pairs, nil)
		}

		for i, idx := range missing {
			embeddings[idx] = vectors[i]
			ix.persist(ctx, pairs[idx].Question, vectors[i])
		}
	}

	slog.InfoContext(ctx, "corpus index built",
		"pairs", len(pairs), "warm_start_hits", len(pairs)-len(missing), "embedded", len(missing))
	return NewSnapshot(pairs, embeddings)
}

// loadCached returns previously persisted vectors for the current
// embedding model, keyed by question text. Best effort.
func (ix *Indexer) loadCached(ctx context.Context) map[string][]float32 {
	if ix.storage == nil {
		return nil
	}

	model := ix.embedder.EmbeddingModel()
	rows, err := ix.storage.ListQAEmbeddings(ctx, &store.FindQAEmbedding{Model: &model})
	if err != nil {
		slog.DebugContext(ctx, "embedding warm-start unavailable", "error", err)
		return nil
	}

	cached := make(map[string][]float32, len(rows))
	for _, row := range rows {
		cached[row.Question] = row.Embedding
	}
	return cached
}

func (ix *Indexer) persist(ctx context.Context, question string, vector []float32) {
	if ix.storage == nil {
		return
	}
	_, err := ix.storage.UpsertQAEmbedding(ctx, &store.QAEmbedding{
		Question:  question,
		Embedding: vector,
		Model:     ix.embedder.EmbeddingModel(),
	})
	if err != nil {
		slog.DebugContext(ctx, "embedding persist skipped", "error", err)
	}
}
