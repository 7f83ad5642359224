package contracts

import (
	"context"
	"time"
)

// Outcome classifies a trade by the sign of its alpha, not its raw
// return. Alpha of exactly zero counts as a Hit.
type Outcome string

const (
	OutcomeHit  Outcome = "Hit"
	OutcomeMiss Outcome = "Miss"
)

// ChartPoint is one point of a trade's adjusted-close chart series.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Trade is the resolved representative trade for one ticker. It is
// derived on every aggregation run and always replaced as a whole,
// never partially persisted. The JSON field names are the external
// serialization contract and must not change.
type Trade struct {
	Ticker         string       `json:"ticker"` // $-prefixed, e.g. "$AAPL"
	Company        string       `json:"company"`
	DateMentioned  string       `json:"dateMentioned"` // YYYY-MM-DD
	BeginningValue float64      `json:"beginningValue"`
	LastValue      float64      `json:"lastValue"`
	Dividends      float64      `json:"dividends"`
	AdjLastValue   float64      `json:"adjLastValue"`
	StockReturn    float64      `json:"stockReturn"`
	AlphaVsSPY     float64      `json:"alphaVsSPY"`
	HitOrMiss      Outcome      `json:"hitOrMiss"`
	TweetURL       string       `json:"tweetUrl"`
	AsOfEntry      string       `json:"asofEntry"`
	AsOfLatest     string       `json:"asofLatest"`
	ChartData      []ChartPoint `json:"chartData"`
}

// TradeRef is the best/worst trade summary on a scorecard.
type TradeRef struct {
	Ticker string `json:"ticker"`
	Return string `json:"return"` // signed percent string, e.g. "+12.5%"
	Date   string `json:"date"`
}

// Scorecard is the per-author performance summary. One exists per
// author; it is overwritten atomically at persistence time, keyed by
// the lower-cased handle. The JSON field names are the external
// serialization contract and must not change.
type Scorecard struct {
	Handle      string    `json:"handle"`
	AvgReturn   float64   `json:"avg_return"`
	Alpha       float64   `json:"alpha"`
	Accuracy    float64   `json:"accuracy"`
	TotalCalls  int       `json:"total_calls"`
	WinRate     float64   `json:"win_rate"`
	BestTrade   *TradeRef `json:"best_trade"`
	WorstTrade  *TradeRef `json:"worst_trade"`
	LastUpdated time.Time `json:"last_updated"`
	Trades      []Trade   `json:"recent_recommendations"`
}

// ScorecardStore is the upsert-by-key persistence boundary. Keys are
// lower-cased author handles; Upsert overwrites on conflict and must be
// atomic from the caller's perspective.
type ScorecardStore interface {
	// Get returns the stored scorecard for a handle, or ErrNotFound.
	Get(ctx context.Context, handle string) (*Scorecard, error)

	// Upsert stores a scorecard, replacing any prior version.
	Upsert(ctx context.Context, sc *Scorecard) error
}
