package jobs

import (
	"context"
	"fmt"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// Analyzer runs the analysis pipeline for one author.
type Analyzer interface {
	Analyze(ctx context.Context, handle string) (*contracts.Scorecard, error)
}

// HandleLister enumerates authors with stored scorecards.
type HandleLister interface {
	Handles(ctx context.Context) ([]string, error)
}

// RefreshScorecardsJob re-runs the pipeline for every stored handle so
// returns and alpha track current market prices. Per-handle failures
// are logged and skipped; the job only fails when no handle could be
// refreshed.
type RefreshScorecardsJob struct {
	analyzer Analyzer
	lister   HandleLister
	schedule string
	logger   *logger.Logger
}

// NewRefreshScorecardsJob creates a new refresh job.
func NewRefreshScorecardsJob(analyzer Analyzer, lister HandleLister, schedule string, log *logger.Logger) *RefreshScorecardsJob {
	return &RefreshScorecardsJob{
		analyzer: analyzer,
		lister:   lister,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *RefreshScorecardsJob) Name() string {
	return "refresh_scorecards"
}

// Schedule returns the configured cron expression.
func (j *RefreshScorecardsJob) Schedule() string {
	return j.schedule
}

// Run refreshes every stored scorecard.
func (j *RefreshScorecardsJob) Run(ctx context.Context) error {
	handles, err := j.lister.Handles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list handles: %w", err)
	}
	if len(handles) == 0 {
		j.logger.Info("No scorecards to refresh")
		return nil
	}

	refreshed := 0
	for _, handle := range handles {
		if err := ctx.Err(); err != nil {
			return err
		}

		sc, err := j.analyzer.Analyze(ctx, handle)
		if err != nil {
			j.logger.WithError(err).WithField("handle", handle).Warn("Scorecard refresh failed, skipping")
			continue
		}
		refreshed++
		j.logger.WithFields(map[string]interface{}{
			"handle":      handle,
			"total_calls": sc.TotalCalls,
		}).Info("Scorecard refreshed")
	}

	if refreshed == 0 {
		return fmt.Errorf("all %d scorecard refreshes failed", len(handles))
	}

	j.logger.WithFields(map[string]interface{}{
		"refreshed": refreshed,
		"total":     len(handles),
	}).Info("Scorecard refresh complete")
	return nil
}
