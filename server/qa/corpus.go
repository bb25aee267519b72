package qa

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

// QAPair is one curated corpus entry. Immutable after load.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Snapshot is an immutable corpus plus its parallel embedding index.
// Readers get a consistent pair-to-vector mapping for as long as they
// hold the snapshot, regardless of concurrent swaps.
type Snapshot struct {
	pairs      []QAPair
	embeddings [][]float32
}

// NewSnapshot builds a snapshot. When the embedding index does not
// line up with the pairs (failed or partial embedding run), the index
// is dropped entirely so ranking degrades instead of indexing out of
// range.
func NewSnapshot(pairs []QAPair, embeddings [][]float32) *Snapshot {
	if len(embeddings) != len(pairs) {
		if len(embeddings) != 0 {
			slog.Warn("dropping embedding index with mismatched length",
				"pairs", len(pairs), "embeddings", len(embeddings))
		}
		embeddings = nil
	}
	return &Snapshot{pairs: pairs, embeddings: embeddings}
}

// Len returns the number of corpus entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// Pair returns the corpus entry at index i.
func (s *Snapshot) Pair(i int) QAPair { return s.pairs[i] }

// Pairs returns the underlying entries. Callers must not mutate.
func (s *Snapshot) Pairs() []QAPair {
	if s == nil {
		return nil
	}
	return s.pairs
}

// Indexed reports whether semantic ranking is possible: a non-empty
// embedding index that matches the corpus length.
func (s *Snapshot) Indexed() bool {
	return s != nil && len(s.pairs) > 0 && len(s.embeddings) == len(s.pairs)
}

// Corpus is a swappable handle to the current snapshot. Reads are
// lock-free; updates replace the whole snapshot atomically so no
// reader ever observes a corpus whose length disagrees with its index.
type Corpus struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewCorpus returns a corpus holding an empty snapshot.
func NewCorpus() *Corpus {
	c := &Corpus{}
	c.snapshot.Store(NewSnapshot(nil, nil))
	return c
}

// Snapshot returns the current snapshot. Never nil.
func (c *Corpus) Snapshot() *Snapshot { return c.snapshot.Load() }

// Swap atomically replaces the current snapshot.
func (c *Corpus) Swap(s *Snapshot) {
	if s == nil {
		s = NewSnapshot(nil, nil)
	}
	c.snapshot.Store(s)
}

// LoadPairs reads the QA dataset from a JSON file. Entries missing a
// question or answer are skipped and counted rather than failing the
// whole load.
func LoadPairs(path string) (pairs []QAPair, skipped int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "read qa dataset")
	}
	return ParsePairs(raw)
}

// ParsePairs decodes a JSON array of question/answer objects, skipping
// malformed entries.
func ParsePairs(raw []byte) (pairs []QAPair, skipped int, err error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, errors.Wrap(err, "parse qa dataset")
	}

	pairs = make([]QAPair, 0, len(entries))
	for i, entry := range entries {
		var pair QAPair
		if err := json.Unmarshal(entry, &pair); err != nil {
			slog.Warn("skipping malformed qa entry", "index", i, "error", err)
			skipped++
			continue
		}
		if pair.Question == "" || pair.Answer == "" {
			slog.Warn("skipping incomplete qa entry", "index", i)
			skipped++
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, skipped, nil
}
