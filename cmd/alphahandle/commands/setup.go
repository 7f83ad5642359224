package commands

import (
	"context"
	"fmt"

	"github.com/cahrendt0815/alphahandle/internal/aggregate"
	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/internal/extract"
	"github.com/cahrendt0815/alphahandle/internal/loader"
	"github.com/cahrendt0815/alphahandle/internal/marketdata/eodhd"
	"github.com/cahrendt0815/alphahandle/internal/marketdata/mock"
	"github.com/cahrendt0815/alphahandle/internal/normalize"
	"github.com/cahrendt0815/alphahandle/internal/pipeline"
	"github.com/cahrendt0815/alphahandle/internal/source"
	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/database"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
	"github.com/cahrendt0815/alphahandle/pkg/redis"
)

// handleLister enumerates authors with stored scorecards.
type handleLister interface {
	Handles(ctx context.Context) ([]string, error)
}

// storeBundle carries the scorecard store plus the resources behind it.
type storeBundle struct {
	store  contracts.ScorecardStore
	lister handleLister
	close  func()
}

// newGateway selects the market-data adapter from config.
func newGateway(cfg *config.Config, log *logger.Logger) contracts.MarketDataGateway {
	if cfg.Market.Provider == "mock" {
		log.Warn("Using mock market data")
		return mock.New()
	}
	return eodhd.New(cfg.Market, log)
}

// newPostSource selects the post source. A posts file takes precedence
// over the live API.
func newPostSource(cfg *config.Config, postsFile string, log *logger.Logger) contracts.PostSource {
	if postsFile != "" {
		log.WithField("file", postsFile).Info("Reading posts from file")
		return source.NewJSONLSource(postsFile)
	}
	return source.NewTwitterAPISource(cfg.Social, log)
}

// newStore builds the scorecard store. Postgres when configured,
// in-memory otherwise; reads go through Redis when it is enabled.
func newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storeBundle, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, scorecards will not survive restarts")
		memory := loader.NewMemoryStore()
		return &storeBundle{store: memory, lister: memory, close: func() {}}, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pg, err := loader.NewPostgresStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var store contracts.ScorecardStore = pg
	if redisClient.Enabled() {
		cache := redis.NewCache(redisClient, "alphahandle")
		store = loader.NewCachedStore(pg, cache, cfg.Pipeline.ScorecardCacheTTL, log)
	}

	closeAll := func() {
		_ = redisClient.Close()
		db.Close()
	}
	return &storeBundle{store: store, lister: pg, close: closeAll}, nil
}

// newPipeline assembles the four pipeline stages.
func newPipeline(cfg *config.Config, src contracts.PostSource, store contracts.ScorecardStore, log *logger.Logger) *pipeline.Pipeline {
	extractor := extract.NewKeywordExtractor(cfg.Pipeline.SpamTickerThreshold)
	normalizer := normalize.New(extractor, log)
	gateway := newGateway(cfg, log)
	aggregator := aggregate.New(gateway, cfg.Market.BenchmarkSymbol, cfg.Pipeline.FanOutWidth, log)
	ldr := loader.New(store, log)

	return pipeline.New(src, normalizer, aggregator, ldr, cfg.Pipeline.RunTimeout, log)
}
