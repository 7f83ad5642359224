package loader

import (
	"context"
	"time"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
	"github.com/cahrendt0815/alphahandle/pkg/redis"
)

// CachedStore is a read-through cache in front of a scorecard store.
// Reads try Redis first; writes go to the store and refresh the cache.
// Cache failures degrade to the store, they never fail the request.
type CachedStore struct {
	store  contracts.ScorecardStore
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedStore wraps a store with a Redis cache.
func NewCachedStore(store contracts.ScorecardStore, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedStore {
	return &CachedStore{store: store, cache: cache, ttl: ttl, logger: log}
}

func (s *CachedStore) Get(ctx context.Context, handle string) (*contracts.Scorecard, error) {
	key := redis.ScorecardKey(contracts.StorageKey(handle))

	var cached contracts.Scorecard
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("scorecard cache read failed")
	}
	if hit {
		return &cached, nil
	}

	sc, err := s.store.Get(ctx, handle)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, sc, s.ttl); err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("scorecard cache write failed")
	}
	return sc, nil
}

func (s *CachedStore) Upsert(ctx context.Context, sc *contracts.Scorecard) error {
	if err := s.store.Upsert(ctx, sc); err != nil {
		return err
	}

	key := redis.ScorecardKey(contracts.StorageKey(sc.Handle))
	if err := s.cache.Set(ctx, key, sc, s.ttl); err != nil {
		s.logger.WithError(err).WithField("handle", sc.Handle).Warn("scorecard cache refresh failed")
	}
	return nil
}

var _ contracts.ScorecardStore = (*CachedStore)(nil)
