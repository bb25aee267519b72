package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

// UpsertQAEmbedding inserts or updates a cached corpus-question embedding.
func (d *DB) UpsertQAEmbedding(ctx context.Context, upsert *store.QAEmbedding) (*store.QAEmbedding, error) {
	stmt := `
		INSERT INTO qa_embedding (question, embedding, model)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (question, model)
		DO UPDATE SET
			embedding = EXCLUDED.embedding
		RETURNING id, created_ts
	`
	vector := pgvector.NewVector(upsert.Embedding)
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.Question,
		vector,
		upsert.Model,
	).Scan(&upsert.ID, &upsert.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert qa embedding")
	}
	return upsert, nil
}

// ListQAEmbeddings lists cached corpus-question embeddings.
func (d *DB) ListQAEmbeddings(ctx context.Context, find *store.FindQAEmbedding) ([]*store.QAEmbedding, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.Question != nil {
		where, args = append(where, "question = "+placeholder(len(args)+1)), append(args, *find.Question)
	}
	if find.Model != nil {
		where, args = append(where, "model = "+placeholder(len(args)+1)), append(args, *find.Model)
	}

	query := fmt.Sprintf(`
		SELECT id, question, embedding, model, created_ts
		FROM qa_embedding
		WHERE %s
		ORDER BY id
	`, strings.Join(where, " AND "))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list qa embeddings")
	}
	defer rows.Close()

	list := []*store.QAEmbedding{}
	for rows.Next() {
		embedding := &store.QAEmbedding{}
		var vector pgvector.Vector
		if err := rows.Scan(
			&embedding.ID,
			&embedding.Question,
			&vector,
			&embedding.Model,
			&embedding.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan qa embedding")
		}
		embedding.Embedding = vector.Slice()
		list = append(list, embedding)
	}
	return list, rows.Err()
}
