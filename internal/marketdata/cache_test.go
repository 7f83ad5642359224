package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	bars := []Bar{{Date: "2024-05-31", Close: 100, AdjustedClose: 100}}

	_, ok := c.Get("AAPL.US:2024-05-01:2024-05-31")
	assert.False(t, ok)

	c.Set("AAPL.US:2024-05-01:2024-05-31", bars)

	got, ok := c.Get("AAPL.US:2024-05-01:2024-05-31")
	require.True(t, ok)
	assert.Equal(t, bars, got)
	assert.Equal(t, 1, c.Len())

	now = now.Add(5*time.Minute + time.Second)
	_, ok = c.Get("AAPL.US:2024-05-01:2024-05-31")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
