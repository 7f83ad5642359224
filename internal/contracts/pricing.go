package contracts

import (
	"context"
	"time"
)

// PricePoint is one trading session for a symbol. Raw carries the
// unadjusted price used for display; Adjusted incorporates dividends
// and splits and is the only price used for return math.
type PricePoint struct {
	Date     time.Time `json:"date"`
	Raw      float64   `json:"raw_price"`
	Adjusted float64   `json:"adjusted_price"`
}

// DateString returns the session date in YYYY-MM-DD form.
func (p PricePoint) DateString() string {
	return p.Date.Format("2006-01-02")
}

// MarketDataGateway is the abstract market-data capability. A missing
// price is a valid nil result, not a retriable fault; retry policy, if
// any, belongs to the concrete adapter. Each operation may fail
// independently without aborting a pipeline run.
type MarketDataGateway interface {
	// EntryPrice returns the first trading session strictly after the
	// given timestamp, or nil if no qualifying session exists in the
	// queried window.
	EntryPrice(ctx context.Context, symbol string, after time.Time) (*PricePoint, error)

	// LatestPrice returns the most recent available session, or nil.
	LatestPrice(ctx context.Context, symbol string) (*PricePoint, error)

	// History returns the full daily series between two dates, ordered
	// ascending by date.
	History(ctx context.Context, symbol string, from, to time.Time) ([]PricePoint, error)

	// CompanyName returns a best-effort display name. It never fails;
	// when nothing better is available it falls back to "<SYMBOL> Inc.".
	CompanyName(ctx context.Context, symbol string) string
}
