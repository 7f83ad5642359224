package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahrendt0815/alphahandle/internal/aggregate"
	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/internal/extract"
	"github.com/cahrendt0815/alphahandle/internal/loader"
	"github.com/cahrendt0815/alphahandle/internal/marketdata/mock"
	"github.com/cahrendt0815/alphahandle/internal/normalize"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

type stubSource struct {
	posts []contracts.RawPost
}

func (s *stubSource) FetchPosts(_ context.Context, _ string, limit int) ([]contracts.RawPost, error) {
	if len(s.posts) > limit {
		return s.posts[:limit], nil
	}
	return s.posts, nil
}

func newTestPipeline(posts []contracts.RawPost, store contracts.ScorecardStore) *Pipeline {
	log := logger.NewNop()
	clock := func() time.Time { return time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC) }

	gateway := mock.NewWithClock(clock)
	normalizer := normalize.NewWithClock(extract.NewKeywordExtractor(10), log, clock)
	aggregator := aggregate.New(gateway, "SPY", 2, log)
	ldr := loader.New(store, log)

	return New(&stubSource{posts: posts}, normalizer, aggregator, ldr, time.Minute, log)
}

func TestPipeline_Analyze(t *testing.T) {
	posted := time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC)
	posts := []contracts.RawPost{
		{
			ID:           "1",
			AuthorHandle: "trader",
			Text:         "Buying $NVDA at $120, also like $AAPL here",
			CreatedAt:    posted,
			URL:          "https://x.com/trader/status/1",
		},
		{
			ID:           "2",
			AuthorHandle: "trader",
			Text:         "No tickers in this one",
			CreatedAt:    posted.Add(time.Hour),
			URL:          "https://x.com/trader/status/2",
		},
	}

	store := loader.NewMemoryStore()
	p := newTestPipeline(posts, store)

	sc, err := p.Analyze(context.Background(), "@Trader")
	require.NoError(t, err)

	assert.Equal(t, "Trader", sc.Handle)
	assert.Equal(t, 2, sc.TotalCalls)
	require.Len(t, sc.Trades, 2)

	for _, trade := range sc.Trades {
		assert.Equal(t, "2024-05-31", trade.DateMentioned)
		assert.Equal(t, "2024-06-03", trade.AsOfEntry)
		assert.Equal(t, "2024-06-14", trade.AsOfLatest)
		assert.Equal(t, "https://x.com/trader/status/1", trade.TweetURL)
		assert.NotEmpty(t, trade.Company)
		assert.NotEmpty(t, trade.ChartData)
	}

	// Stock and benchmark drift identically in the mock, so every call
	// tracks the market exactly.
	assert.InDelta(t, 0.0, sc.Alpha, 0.3)

	stored, err := store.Get(context.Background(), "trader")
	require.NoError(t, err)
	assert.Equal(t, sc.TotalCalls, stored.TotalCalls)
}

func TestPipeline_Idempotent(t *testing.T) {
	posts := []contracts.RawPost{{
		ID:           "1",
		AuthorHandle: "trader",
		Text:         "Buying $NVDA",
		CreatedAt:    time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC),
		URL:          "https://x.com/trader/status/1",
	}}
	store := loader.NewMemoryStore()
	p := newTestPipeline(posts, store)

	first, err := p.Analyze(context.Background(), "trader")
	require.NoError(t, err)
	second, err := p.Analyze(context.Background(), "trader")
	require.NoError(t, err)

	assert.Equal(t, first.Trades, second.Trades)
	assert.Equal(t, first.AvgReturn, second.AvgReturn)
}

func TestPipeline_InvalidHandle(t *testing.T) {
	p := newTestPipeline(nil, loader.NewMemoryStore())

	_, err := p.Analyze(context.Background(), "not a handle")
	assert.ErrorIs(t, err, contracts.ErrInvalidHandle)
}

func TestPipeline_NoSignals(t *testing.T) {
	posts := []contracts.RawPost{{
		ID:           "1",
		AuthorHandle: "trader",
		Text:         "Nice weather today",
		CreatedAt:    time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC),
	}}
	p := newTestPipeline(posts, loader.NewMemoryStore())

	_, err := p.Analyze(context.Background(), "trader")
	assert.ErrorIs(t, err, contracts.ErrNoTrades)
}
