package qa

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/store"
)

type stubBatchEmbedder struct {
	err   error
	calls int
}

func (s *stubBatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(len(texts[i])), 1}
	}
	return vectors, nil
}

func (s *stubBatchEmbedder) EmbeddingModel() string { return "test-embedding" }

type memoryEmbeddingStore struct {
	rows    []*store.QAEmbedding
	listErr error
	upserts int
}

func (m *memoryEmbeddingStore) ListQAEmbeddings(ctx context.Context, find *store.FindQAEmbedding) ([]*store.QAEmbedding, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

func (m *memoryEmbeddingStore) UpsertQAEmbedding(ctx context.Context, upsert *store.QAEmbedding) (*store.QAEmbedding, error) {
	m.upserts++
	m.rows = append(m.rows, upsert)
	return upsert, nil
}

func TestBuildSnapshotEmbedsAll(t *testing.T) {
	embedder := &stubBatchEmbedder{}
	indexer := NewIndexer(embedder, &memoryEmbeddingStore{})

	pairs := []QAPair{
		{Question: "What is the leave policy?", Answer: "20 days."},
		{Question: "How are you?", Answer: "Great."},
	}
	snapshot := indexer.BuildSnapshot(context.Background(), pairs)

	require.True(t, snapshot.Indexed())
	assert.Equal(t, 2, snapshot.Len())
	assert.Equal(t, 1, embedder.calls)
}

func TestBuildSnapshotWarmStart(t *testing.T) {
	storage := &memoryEmbeddingStore{
		rows: []*store.QAEmbedding{
			{Question: "What is the leave policy?", Embedding: []float32{0.5, 0.5}, Model: "test-embedding"},
		},
	}
	embedder := &stubBatchEmbedder{}
	indexer := NewIndexer(embedder, storage)

	pairs := []QAPair{
		{Question: "What is the leave policy?", Answer: "20 days."},
		{Question: "How are you?", Answer: "Great."},
	}
	snapshot := indexer.BuildSnapshot(context.Background(), pairs)

	require.True(t, snapshot.Indexed())
	// Only the cache miss was embedded and persisted.
	assert.Equal(t, 1, embedder.calls)
	assert.Equal(t, 1, storage.upserts)
	assert.Equal(t, []float32{0.5, 0.5}, snapshot.embeddings[0])
}

func TestBuildSnapshotFullWarmStartSkipsProvider(t *testing.T) {
	storage := &memoryEmbeddingStore{
		rows: []*store.QAEmbedding{
			{Question: "What is the leave policy?", Embedding: []float32{0.5, 0.5}, Model: "test-embedding"},
		},
	}
	embedder := &stubBatchEmbedder{err: errors.New("should not be called")}
	indexer := NewIndexer(embedder, storage)

	pairs := []QAPair{{Question: "What is the leave policy?", Answer: "20 days."}}
	snapshot := indexer.BuildSnapshot(context.Background(), pairs)

	require.True(t, snapshot.Indexed())
	assert.Zero(t, embedder.calls)
}

func TestBuildSnapshotEmbeddingFailureDegrades(t *testing.T) {
	indexer := NewIndexer(&stubBatchEmbedder{err: errors.New("provider down")}, nil)

	pairs := []QAPair{{Question: "What is the leave policy?", Answer: "20 days."}}
	snapshot := indexer.BuildSnapshot(context.Background(), pairs)

	require.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.Len())
	assert.False(t, snapshot.Indexed())
}

func TestBuildSnapshotStoreFailureStillEmbeds(t *testing.T) {
	storage := &memoryEmbeddingStore{listErr: errors.New("relation does not exist")}
	indexer := NewIndexer(&stubBatchEmbedder{}, storage)

	pairs := []QAPair{{Question: "What is the leave policy?", Answer: "20 days."}}
	snapshot := indexer.BuildSnapshot(context.Background(), pairs)
	assert.True(t, snapshot.Indexed())
}

func TestBuildSnapshotNoEmbedder(t *testing.T) {
	indexer := NewIndexer(nil, nil)
	snapshot := indexer.BuildSnapshot(context.Background(), []QAPair{{Question: "q", Answer: "a"}})
	assert.Equal(t, 1, snapshot.Len())
	assert.False(t, snapshot.Indexed())
}
