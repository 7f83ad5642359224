package mock

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
)

// Gateway is a deterministic in-memory market-data source for
// development and tests. Prices derive from a hash of the symbol and
// drift upward a fixed amount per calendar day, so the same inputs
// always produce the same scorecard.
type Gateway struct {
	now func() time.Time
}

// New creates a mock gateway on the wall clock.
func New() *Gateway {
	return &Gateway{now: time.Now}
}

// NewWithClock creates a mock gateway with an explicit clock.
func NewWithClock(now func() time.Time) *Gateway {
	return &Gateway{now: now}
}

// basePrice maps a symbol onto a stable price between 20 and 520.
func basePrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return 20 + float64(h.Sum32()%500)
}

// dailyDriftPct is the per-day price drift in percent.
const dailyDriftPct = 0.1

// priceOn returns the deterministic price for a symbol on a date.
func priceOn(symbol string, date time.Time) float64 {
	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	days := math.Floor(date.Sub(epoch).Hours() / 24)
	price := basePrice(symbol) * math.Pow(1+dailyDriftPct/100, days)
	return math.Round(price*100) / 100
}

// nextTradingDay returns the first weekday strictly after a date.
func nextTradingDay(after time.Time) time.Time {
	day := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, time.UTC)
	for {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return day
		}
	}
}

func (g *Gateway) EntryPrice(ctx context.Context, symbol string, after time.Time) (*contracts.PricePoint, error) {
	day := nextTradingDay(after.UTC())
	price := priceOn(symbol, day)
	return &contracts.PricePoint{Date: day, Raw: price, Adjusted: price}, nil
}

func (g *Gateway) LatestPrice(ctx context.Context, symbol string) (*contracts.PricePoint, error) {
	now := g.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday; wd = day.Weekday() {
		day = day.AddDate(0, 0, -1)
	}
	price := priceOn(symbol, day)
	return &contracts.PricePoint{Date: day, Raw: price, Adjusted: price}, nil
}

func (g *Gateway) History(ctx context.Context, symbol string, from, to time.Time) ([]contracts.PricePoint, error) {
	var points []contracts.PricePoint
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(end) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			price := priceOn(symbol, day)
			points = append(points, contracts.PricePoint{Date: day, Raw: price, Adjusted: price})
		}
		day = day.AddDate(0, 0, 1)
	}
	return points, nil
}

func (g *Gateway) CompanyName(ctx context.Context, symbol string) string {
	return symbol + " Inc."
}

var _ contracts.MarketDataGateway = (*Gateway)(nil)
