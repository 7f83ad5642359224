package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Deterministic(t *testing.T) {
	g := New()
	ctx := context.Background()

	// Friday afternoon mention resolves to Monday.
	mentioned := time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC)
	a, err := g.EntryPrice(ctx, "AAPL", mentioned)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "2024-06-03", a.DateString())
	assert.Equal(t, time.Monday, a.Date.Weekday())

	b, err := g.EntryPrice(ctx, "AAPL", mentioned)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := g.EntryPrice(ctx, "MSFT", mentioned)
	require.NoError(t, err)
	assert.NotEqual(t, a.Raw, other.Raw)
}

func TestGateway_LatestAfterEntry(t *testing.T) {
	g := NewWithClock(func() time.Time {
		return time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	})
	ctx := context.Background()

	entry, err := g.EntryPrice(ctx, "NVDA", time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	latest, err := g.LatestPrice(ctx, "NVDA")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-14", latest.DateString())
	assert.Greater(t, latest.Adjusted, entry.Adjusted)
}

func TestGateway_HistorySkipsWeekends(t *testing.T) {
	g := New()
	points, err := g.History(context.Background(), "SPY",
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, points, 6)
	for _, p := range points {
		assert.NotEqual(t, time.Saturday, p.Date.Weekday())
		assert.NotEqual(t, time.Sunday, p.Date.Weekday())
	}
}

func TestGateway_CompanyName(t *testing.T) {
	g := New()
	assert.Equal(t, "AAPL Inc.", g.CompanyName(context.Background(), "AAPL"))
}
