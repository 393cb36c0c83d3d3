// Package ticker populates the cross-metal comparison map used by the
// ticker view. Population is best-effort background work: completion order
// is unconstrained, one metal's failure never blocks another, and readers
// tolerate a partially filled snapshot.
package ticker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"metalwatch/internal/analysis"
	"metalwatch/internal/models"
	"metalwatch/internal/performance"
	"metalwatch/internal/source"
)

// Ticker holds the eventually-consistent comparison map.
type Ticker struct {
	src    source.QuoteSource
	pool   *performance.WorkerPool
	logger zerolog.Logger

	mu      sync.RWMutex
	results map[string]*models.ComparisonResult
}

// New creates a ticker over the given quote source.
func New(src source.QuoteSource, workers int, logger zerolog.Logger) *Ticker {
	return &Ticker{
		src:     src,
		pool:    performance.NewWorkerPool(workers),
		logger:  logger,
		results: make(map[string]*models.ComparisonResult),
	}
}

// Start starts the background workers.
func (t *Ticker) Start() { t.pool.Start() }

// Stop stops the workers and waits for in-flight fetches.
func (t *Ticker) Stop() { t.pool.Stop() }

// Refresh schedules a comparison fetch per metal. A refused submission
// (pool stopped or saturated) is skipped silently; the snapshot just stays
// stale for that metal.
func (t *Ticker) Refresh(ctx context.Context, metals []models.Metal, sel models.UnitSelection) {
	for _, m := range metals {
		metal := m
		t.pool.Submit(func() {
			t.fetchOne(ctx, metal, sel)
		})
	}
}

func (t *Ticker) fetchOne(ctx context.Context, m models.Metal, sel models.UnitSelection) {
	cq, err := t.src.Comparison(ctx, m.Symbol)
	if err != nil {
		t.logger.Debug().Err(err).Str("metal", m.Symbol).Msg("Ticker fetch failed")
		return
	}

	cmp := analysis.Compare(cq.Today, cq.Yesterday, m, sel)
	if cmp == nil {
		return
	}

	t.mu.Lock()
	t.results[m.Symbol] = cmp
	t.mu.Unlock()
}

// Snapshot returns a copy of the current comparison map. It may be
// partially populated while fetches are in flight.
func (t *Ticker) Snapshot() map[string]*models.ComparisonResult {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]*models.ComparisonResult, len(t.results))
	for k, v := range t.results {
		out[k] = v
	}
	return out
}
