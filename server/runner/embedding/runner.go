// Package embedding retries corpus indexing in the background. When
// the embedding provider is unreachable at boot the server starts with
// keyword-only matching; this runner upgrades it to hybrid scoring as
// soon as the provider recovers.
package embedding

import (
	"context"
	"log/slog"
	"time"

	"github.com/orgai/hr-assistant/server/qa"
)

const defaultInterval = 2 * time.Minute

// Runner periodically rebuilds the corpus snapshot until it is indexed.
type Runner struct {
	corpus   *qa.Corpus
	indexer  *qa.Indexer
	pairs    []qa.QAPair
	interval time.Duration
}

// NewRunner creates an index retry runner over a fixed set of pairs.
func NewRunner(corpus *qa.Corpus, indexer *qa.Indexer, pairs []qa.QAPair) *Runner {
	return &Runner{
		corpus:   corpus,
		indexer:  indexer,
		pairs:    pairs,
		interval: defaultInterval,
	}
}

// Run blocks until the corpus is indexed or the context is canceled.
func (r *Runner) Run(ctx context.Context) {
	if r.RunOnce(ctx) {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("embedding runner stopped")
			return
		case <-ticker.C:
			if r.RunOnce(ctx) {
				return
			}
		}
	}
}

// RunOnce attempts one rebuild. It returns true when no further work
// remains, either because the corpus is indexed or there is nothing to
// index.
func (r *Runner) RunOnce(ctx context.Context) bool {
	if len(r.pairs) == 0 || r.indexer == nil {
		return true
	}
	if r.corpus.Snapshot().Indexed() {
		return true
	}

	snapshot := r.indexer.BuildSnapshot(ctx, r.pairs)
	if !snapshot.Indexed() {
		slog.Warn("corpus index rebuild failed, will retry", slog.Int("pairs", len(r.pairs)))
		return false
	}

	r.corpus.Swap(snapshot)
	slog.Info("corpus index rebuilt", slog.Int("pairs", snapshot.Len()))
	return true
}
