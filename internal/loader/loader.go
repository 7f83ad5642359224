package loader

import (
	"context"
	"errors"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// Loader is the persistence stage. Every run writes the freshly
// recomputed scorecard whole; the comparison against the previous
// version is informational only and never gates the write. Recomputing
// everything keeps stored metrics consistent with current market data
// even when no new posts arrived.
type Loader struct {
	store  contracts.ScorecardStore
	logger *logger.Logger
}

// New creates a loader on a store.
func New(store contracts.ScorecardStore, log *logger.Logger) *Loader {
	return &Loader{store: store, logger: log}
}

// Load upserts the scorecard, keyed by the lower-cased handle.
func (l *Loader) Load(ctx context.Context, sc *contracts.Scorecard) error {
	log := l.logger.WithField("handle", sc.Handle)

	previous, err := l.store.Get(ctx, sc.Handle)
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		log.Info("first scorecard for handle")
	case err != nil:
		log.WithError(err).Warn("previous scorecard read failed, writing anyway")
	default:
		log.WithFields(map[string]interface{}{
			"new_calls":   countNewCalls(sc, previous),
			"total_calls": sc.TotalCalls,
			"prev_update": previous.LastUpdated,
		}).Info("replacing scorecard")
	}

	if err := l.store.Upsert(ctx, sc); err != nil {
		return err
	}

	log.WithField("total_calls", sc.TotalCalls).Info("scorecard stored")
	return nil
}

// countNewCalls counts trades mentioned after the previous run. Used
// for logging; the full recompute happens regardless.
func countNewCalls(current, previous *contracts.Scorecard) int {
	cutoff := previous.LastUpdated.UTC().Format("2006-01-02")
	count := 0
	for _, trade := range current.Trades {
		if trade.DateMentioned > cutoff {
			count++
		}
	}
	return count
}
