package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
)

func TestExtractTickers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single ticker", "Buying $AAPL here", []string{"AAPL"}},
		{"multiple tickers", "$MSFT and $GOOGL look strong", []string{"MSFT", "GOOGL"}},
		{"dedup keeps first seen", "$TSLA dip. Adding more $TSLA", []string{"TSLA"}},
		{"too long rejected", "$TOOLONG is not a ticker", nil},
		{"five letters accepted", "$GOOGL at the highs", []string{"GOOGL"}},
		{"lowercase ignored", "$aapl is not a cashtag", nil},
		{"currency blocked", "The $USD is weakening against $EUR", nil},
		{"indicator blocked", "$CPI print tomorrow, watching $NVDA", []string{"NVDA"}},
		{"abbreviation blocked", "$IPO season is back, $ETF flows strong", nil},
		{"bare dollar amount", "Spent $100 on lunch", nil},
		{"no tickers", "Great quarter for the whole market", nil},
		{"mixed valid and blocked", "$GDP surprise lifts $SPY and $QQQ", []string{"SPY", "QQQ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTickers(tt.text))
		})
	}
}

func TestInferIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want contracts.TradeIntent
	}{
		{
			"bullish",
			"Buying $AAPL on this dip",
			contracts.TradeIntent{Action: contracts.ActionBuy, Direction: contracts.DirectionLong},
		},
		{
			"bearish sell stays long direction",
			"Selling my $TSLA position",
			contracts.TradeIntent{Action: contracts.ActionSell, Direction: contracts.DirectionLong},
		},
		{
			"literal short flips direction",
			"Shorting $GME into earnings",
			contracts.TradeIntent{Action: contracts.ActionSell, Direction: contracts.DirectionShort},
		},
		{
			"mixed sentiment resolves bearish",
			"Was bullish on $NFLX but selling now",
			contracts.TradeIntent{Action: contracts.ActionSell, Direction: contracts.DirectionLong},
		},
		{
			"no keywords defaults to hold",
			"$AMZN earnings call at 5pm",
			contracts.TradeIntent{Action: contracts.ActionHold, Direction: contracts.DirectionLong},
		},
		{
			"neutral keyword",
			"Watching $META from the sidelines",
			contracts.TradeIntent{Action: contracts.ActionHold, Direction: contracts.DirectionLong},
		},
		{
			"case insensitive",
			"STRONG BUY on $AMD",
			contracts.TradeIntent{Action: contracts.ActionBuy, Direction: contracts.DirectionLong},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferIntent(tt.text))
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"at with dollar sign", "Bought $AAPL at $150.25", floatPtr(150.25)},
		{"at without dollar sign", "Added $MSFT at 310", floatPtr(310)},
		{"at symbol", "Long $NVDA @ 495.50", floatPtr(495.50)},
		{"first price wins", "In at $50, target at $75", floatPtr(50)},
		{"no price", "Bullish on $GOOGL long term", nil},
		{"plain dollar amount without anchor", "Made $500 today on $SPY", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPrice(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestKeywordExtractor_Extract(t *testing.T) {
	e := NewKeywordExtractor(10)

	t.Run("one signal per ticker sharing intent", func(t *testing.T) {
		signals := e.Extract("Buying $AAPL and $MSFT at $150")
		require.Len(t, signals, 2)

		assert.Equal(t, "AAPL", signals[0].Ticker)
		assert.Equal(t, "MSFT", signals[1].Ticker)
		for _, s := range signals {
			assert.Equal(t, contracts.ActionBuy, s.Intent.Action)
			assert.Equal(t, contracts.DirectionLong, s.Intent.Direction)
			require.NotNil(t, s.Price)
			assert.InDelta(t, 150.0, *s.Price, 1e-9)
			assert.InDelta(t, 0.8, s.Confidence, 1e-9)
		}
	})

	t.Run("no tickers yields nothing", func(t *testing.T) {
		assert.Nil(t, e.Extract("Markets look frothy"))
	})

	t.Run("spam post rejected whole", func(t *testing.T) {
		spam := "$A $B $C $D $E $F $G $H $I $J $K pump alert"
		assert.Nil(t, e.Extract(spam))
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		atLimit := "$A $B $C $D $E $F $G $H $I $J watchlist"
		assert.Len(t, e.Extract(atLimit), 10)
	})
}

func floatPtr(v float64) *float64 { return &v }
