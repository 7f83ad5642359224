package aggregate

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// Aggregator resolves recommendations against market data and folds
// them into a scorecard. One representative trade is elected per
// ticker; tickers whose market data cannot be resolved are skipped with
// a warning rather than failing the run.
type Aggregator struct {
	gateway         contracts.MarketDataGateway
	benchmarkSymbol string
	fanOutWidth     int
	logger          *logger.Logger
	now             func() time.Time
}

// New builds an aggregator. fanOutWidth bounds concurrent market-data
// resolution; the gateway's own rate limiter governs provider traffic.
func New(gateway contracts.MarketDataGateway, benchmarkSymbol string, fanOutWidth int, log *logger.Logger) *Aggregator {
	if fanOutWidth < 1 {
		fanOutWidth = 1
	}
	return &Aggregator{
		gateway:         gateway,
		benchmarkSymbol: benchmarkSymbol,
		fanOutWidth:     fanOutWidth,
		logger:          log,
		now:             time.Now,
	}
}

// Aggregate computes the scorecard for a handle from its
// recommendations. Returns ErrNoTrades when nothing survives
// resolution.
func (a *Aggregator) Aggregate(ctx context.Context, handle string, recs []contracts.Recommendation) (*contracts.Scorecard, error) {
	elected := electRepresentatives(recs)
	if len(elected) == 0 {
		return nil, contracts.ErrNoTrades
	}

	benchEntries, benchLatest := a.prefetchBenchmark(ctx, elected)

	var (
		mu     sync.Mutex
		trades []contracts.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.fanOutWidth)
	for _, rec := range elected {
		rec := rec
		g.Go(func() error {
			trade, ok := a.resolveTrade(gctx, rec, benchEntries, benchLatest)
			if !ok {
				return nil
			}
			mu.Lock()
			trades = append(trades, *trade)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil && len(trades) == 0 {
		return nil, err
	}

	if len(trades) == 0 {
		return nil, contracts.ErrNoTrades
	}

	// Newest mention first; ticker breaks ties so runs stay
	// byte-identical.
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].DateMentioned == trades[j].DateMentioned {
			return trades[i].Ticker < trades[j].Ticker
		}
		return trades[i].DateMentioned > trades[j].DateMentioned
	})

	return a.buildScorecard(handle, trades), nil
}

// electRepresentatives groups recommendations by ticker and keeps the
// earliest mention of each. The output is ordered by ticker mention
// time so runs are deterministic.
func electRepresentatives(recs []contracts.Recommendation) []contracts.Recommendation {
	byTicker := make(map[string]contracts.Recommendation)
	for _, rec := range recs {
		current, seen := byTicker[rec.Ticker]
		if !seen || rec.MentionedAt.Before(current.MentionedAt) {
			byTicker[rec.Ticker] = rec
		}
	}

	elected := make([]contracts.Recommendation, 0, len(byTicker))
	for _, rec := range byTicker {
		elected = append(elected, rec)
	}
	sort.Slice(elected, func(i, j int) bool {
		if elected[i].MentionedAt.Equal(elected[j].MentionedAt) {
			return elected[i].Ticker < elected[j].Ticker
		}
		return elected[i].MentionedAt.Before(elected[j].MentionedAt)
	})
	return elected
}

// prefetchBenchmark fetches the benchmark entry once per distinct
// mention date, plus the benchmark latest. A failed fetch maps to a
// nil entry; resolveTrade skips tickers whose benchmark is missing.
func (a *Aggregator) prefetchBenchmark(ctx context.Context, elected []contracts.Recommendation) (map[string]*contracts.PricePoint, *contracts.PricePoint) {
	entries := make(map[string]*contracts.PricePoint)
	for _, rec := range elected {
		date := rec.MentionedAt.UTC().Format("2006-01-02")
		if _, done := entries[date]; done {
			continue
		}
		point, err := a.gateway.EntryPrice(ctx, a.benchmarkSymbol, rec.MentionedAt)
		if err != nil {
			a.logger.WithError(err).WithField("date", date).Warn("benchmark entry fetch failed")
			point = nil
		}
		entries[date] = point
	}

	latest, err := a.gateway.LatestPrice(ctx, a.benchmarkSymbol)
	if err != nil {
		a.logger.WithError(err).Warn("benchmark latest fetch failed")
		latest = nil
	}
	return entries, latest
}

// resolveTrade turns one elected recommendation into a trade. Any
// unresolvable price makes the ticker a skip, not a failure.
func (a *Aggregator) resolveTrade(ctx context.Context, rec contracts.Recommendation, benchEntries map[string]*contracts.PricePoint, benchLatest *contracts.PricePoint) (*contracts.Trade, bool) {
	log := a.logger.WithFields(map[string]interface{}{
		"ticker": rec.Ticker,
		"handle": rec.AuthorHandle,
	})

	benchReturn, ok := a.benchmarkReturn(rec, benchEntries, benchLatest)
	if !ok {
		log.Warn("benchmark data unavailable, skipping ticker")
		return nil, false
	}

	latest, err := a.gateway.LatestPrice(ctx, rec.Ticker)
	if err != nil {
		log.WithError(err).Warn("latest price fetch failed, skipping ticker")
		return nil, false
	}
	if latest == nil {
		log.Warn("no latest price available, skipping ticker")
		return nil, false
	}

	entry, err := a.gateway.EntryPrice(ctx, rec.Ticker, rec.MentionedAt)
	if err != nil {
		log.WithError(err).Warn("entry price fetch failed, skipping ticker")
		return nil, false
	}
	if entry == nil {
		// Mention too recent for a following session. The latest
		// session stands in so the call still appears, at zero return.
		entry = latest
	}

	chart, err := a.gateway.History(ctx, rec.Ticker, entry.Date, latest.Date)
	if err != nil {
		log.WithError(err).Warn("history fetch failed, charting without series")
		chart = nil
	}

	stockReturn := CalculateReturn(entry.Adjusted, latest.Adjusted)
	alpha := Alpha(stockReturn, benchReturn)

	points := make([]contracts.ChartPoint, 0, len(chart))
	for _, p := range chart {
		points = append(points, contracts.ChartPoint{Date: p.DateString(), Value: Round2(p.Adjusted)})
	}

	return &contracts.Trade{
		Ticker:         "$" + rec.Ticker,
		Company:        a.gateway.CompanyName(ctx, rec.Ticker),
		DateMentioned:  rec.MentionedAt.UTC().Format("2006-01-02"),
		BeginningValue: Round2(entry.Raw),
		LastValue:      Round2(latest.Raw),
		Dividends:      Round2(latest.Adjusted - latest.Raw),
		AdjLastValue:   Round2(latest.Adjusted),
		StockReturn:    Round1(stockReturn),
		AlphaVsSPY:     Round1(alpha),
		HitOrMiss:      HitOrMiss(alpha),
		TweetURL:       rec.SourceURL,
		AsOfEntry:      entry.DateString(),
		AsOfLatest:     latest.DateString(),
		ChartData:      points,
	}, true
}

// benchmarkReturn computes the benchmark return over the trade's
// holding window. ok is false when the benchmark entry for the mention
// date or the benchmark latest is unavailable; alpha cannot be
// computed then and the ticker must be skipped, never scored against a
// made-up benchmark.
func (a *Aggregator) benchmarkReturn(rec contracts.Recommendation, benchEntries map[string]*contracts.PricePoint, benchLatest *contracts.PricePoint) (float64, bool) {
	date := rec.MentionedAt.UTC().Format("2006-01-02")
	benchEntry := benchEntries[date]
	if benchEntry == nil || benchLatest == nil {
		return 0, false
	}
	return CalculateReturn(benchEntry.Adjusted, benchLatest.Adjusted), true
}

// buildScorecard folds resolved trades into the per-handle summary.
func (a *Aggregator) buildScorecard(handle string, trades []contracts.Trade) *contracts.Scorecard {
	var (
		sumReturn float64
		sumAlpha  float64
		hits      int
		wins      int
		best      = 0
		worst     = 0
	)
	for i, trade := range trades {
		sumReturn += trade.StockReturn
		sumAlpha += trade.AlphaVsSPY
		if trade.HitOrMiss == contracts.OutcomeHit {
			hits++
		}
		if IsWin(trade.StockReturn) {
			wins++
		}
		if trade.StockReturn > trades[best].StockReturn {
			best = i
		}
		if trade.StockReturn < trades[worst].StockReturn {
			worst = i
		}
	}

	n := float64(len(trades))
	return &contracts.Scorecard{
		Handle:      handle,
		AvgReturn:   Round1(sumReturn / n),
		Alpha:       Round1(sumAlpha / n),
		Accuracy:    Round1(float64(hits) / n * 100),
		TotalCalls:  len(trades),
		WinRate:     Round1(float64(wins) / n * 100),
		BestTrade:   tradeRef(trades[best]),
		WorstTrade:  tradeRef(trades[worst]),
		LastUpdated: a.now().UTC(),
		Trades:      trades,
	}
}

func tradeRef(trade contracts.Trade) *contracts.TradeRef {
	return &contracts.TradeRef{
		Ticker: trade.Ticker,
		Return: FormatSignedPercent(trade.StockReturn),
		Date:   trade.DateMentioned,
	}
}
