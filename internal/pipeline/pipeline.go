package pipeline

import (
	"context"
	"time"

	"github.com/cahrendt0815/alphahandle/internal/aggregate"
	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/internal/loader"
	"github.com/cahrendt0815/alphahandle/internal/normalize"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// defaultFetchLimit caps how many recent posts one run analyzes.
const defaultFetchLimit = 100

// Pipeline wires the four stages end to end: fetch and extract,
// normalize, aggregate against market data, load. Each run recomputes
// the scorecard from scratch.
type Pipeline struct {
	source     contracts.PostSource
	normalizer *normalize.Normalizer
	aggregator *aggregate.Aggregator
	loader     *loader.Loader
	runTimeout time.Duration
	fetchLimit int
	logger     *logger.Logger
}

// New assembles a pipeline.
func New(source contracts.PostSource, normalizer *normalize.Normalizer, aggregator *aggregate.Aggregator, ldr *loader.Loader, runTimeout time.Duration, log *logger.Logger) *Pipeline {
	return &Pipeline{
		source:     source,
		normalizer: normalizer,
		aggregator: aggregator,
		loader:     ldr,
		runTimeout: runTimeout,
		fetchLimit: defaultFetchLimit,
		logger:     log,
	}
}

// Analyze runs the full pipeline for one author and returns the stored
// scorecard. The handle is validated before any stage runs; the whole
// run is bounded by the configured timeout.
func (p *Pipeline) Analyze(ctx context.Context, rawHandle string) (*contracts.Scorecard, error) {
	handle, err := contracts.NormalizeHandle(rawHandle)
	if err != nil {
		return nil, err
	}

	if p.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.runTimeout)
		defer cancel()
	}

	log := p.logger.WithField("handle", handle)
	started := time.Now()

	posts, err := p.source.FetchPosts(ctx, handle, p.fetchLimit)
	if err != nil {
		return nil, err
	}
	log.WithField("posts", len(posts)).Info("posts fetched")

	recs := p.normalizer.Normalize(posts)

	sc, err := p.aggregator.Aggregate(ctx, handle, recs)
	if err != nil {
		return nil, err
	}

	if err := p.loader.Load(ctx, sc); err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"total_calls": sc.TotalCalls,
		"avg_return":  sc.AvgReturn,
		"alpha":       sc.Alpha,
		"duration":    time.Since(started),
	}).Info("analysis run complete")
	return sc, nil
}
