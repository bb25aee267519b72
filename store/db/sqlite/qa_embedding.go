package sqlite

import (
	"context"
	"errors"

	"github.com/orgai/hr-assistant/store"
)

// Embedding persistence is NOT supported on SQLite. The corpus is small
// enough that re-embedding at startup is acceptable for development;
// production deployments use PostgreSQL with pgvector.

// ErrSQLiteEmbeddingNotSupported is returned when embedding persistence
// is requested on SQLite.
var ErrSQLiteEmbeddingNotSupported = errors.New("embedding persistence is not supported on SQLite; use PostgreSQL")

func (d *DB) UpsertQAEmbedding(ctx context.Context, upsert *store.QAEmbedding) (*store.QAEmbedding, error) {
	return nil, ErrSQLiteEmbeddingNotSupported
}

func (d *DB) ListQAEmbeddings(ctx context.Context, find *store.FindQAEmbedding) ([]*store.QAEmbedding, error) {
	return nil, ErrSQLiteEmbeddingNotSupported
}
