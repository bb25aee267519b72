package store

import "context"

// QAEmbedding is a cached embedding vector for a corpus question.
// Persisting embeddings lets a restart warm-start the resolver without
// re-embedding the whole dataset; it is an optimization only, the
// resolver re-embeds on a cache miss.
type QAEmbedding struct {
	ID        int32
	Question  string
	Embedding []float32
	Model     string
	CreatedTs int64
}

// FindQAEmbedding is the find condition for QA embeddings.
type FindQAEmbedding struct {
	Question *string
	Model    *string
}

func (s *Store) UpsertQAEmbedding(ctx context.Context, upsert *QAEmbedding) (*QAEmbedding, error) {
	return s.driver.UpsertQAEmbedding(ctx, upsert)
}

func (s *Store) ListQAEmbeddings(ctx context.Context, find *FindQAEmbedding) ([]*QAEmbedding, error) {
	return s.driver.ListQAEmbeddings(ctx, find)
}
