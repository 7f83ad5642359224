package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/internal/marketdata"
	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/httputil"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

const dateLayout = "2006-01-02"

// latestLookbackDays bounds the window queried for the most recent
// session. Two weeks covers any stretch of holidays.
const latestLookbackDays = 14

// Client is the EODHD market-data adapter. All provider traffic flows
// through a single rate limiter; bar fetches are cached for the life of
// the cache TTL so one analysis run hits each window once.
type Client struct {
	http           *httputil.Client
	baseURL        string
	token          string
	lookaheadDays  int
	companyBaseURL string
	limiter        *rate.Limiter
	cache          *marketdata.Cache
	logger         *logger.Logger
	now            func() time.Time

	// companyNames memoizes scrape results for the client lifetime.
	companyNames sync.Map
}

// New creates an EODHD client from market configuration.
func New(cfg config.MarketConfig, log *logger.Logger) *Client {
	perSecond := rate.Limit(float64(cfg.MaxRequestsPerMin) / 60.0)
	return &Client{
		http:           httputil.New(log),
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		token:          cfg.APIToken,
		lookaheadDays:  cfg.EntryLookaheadDays,
		companyBaseURL: strings.TrimSuffix(cfg.CompanyPageBaseURL, "/"),
		limiter:        rate.NewLimiter(perSecond, 5),
		cache:          marketdata.NewCache(cfg.QuoteCacheTTL),
		logger:         log,
		now:            time.Now,
	}
}

// normalizeSymbol appends the default US exchange suffix when the
// caller passed a bare ticker.
func normalizeSymbol(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// fetchBars returns the EOD series for a symbol between two dates,
// ascending. Results are cached per (symbol, window).
func (c *Client) fetchBars(ctx context.Context, symbol string, from, to time.Time) ([]marketdata.Bar, error) {
	normalized := normalizeSymbol(symbol)
	key := fmt.Sprintf("%s:%s:%s", normalized, from.Format(dateLayout), to.Format(dateLayout))

	if bars, ok := c.cache.Get(key); ok {
		return bars, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/eod/%s?from=%s&to=%s&api_token=%s&fmt=json",
		c.baseURL, url.PathEscape(normalized),
		from.Format(dateLayout), to.Format(dateLayout), url.QueryEscape(c.token))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("eodhd request failed for %s: %w", normalized, err)
	}
	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		// Unknown symbol. Treated as missing data, not a fault.
		c.cache.Set(key, nil)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eodhd returned status %d for %s", resp.StatusCode, normalized)
	}

	var bars []marketdata.Bar
	if err := json.Unmarshal(body, &bars); err != nil {
		return nil, fmt.Errorf("eodhd response decode failed for %s: %w", normalized, err)
	}

	c.cache.Set(key, bars)
	return bars, nil
}

// EntryPrice returns the first session strictly after the mention
// timestamp, looking ahead a bounded number of calendar days. Raw is
// the session open, Adjusted the adjusted close.
func (c *Client) EntryPrice(ctx context.Context, symbol string, after time.Time) (*contracts.PricePoint, error) {
	mentionDate := after.UTC().Format(dateLayout)
	from := after.UTC()
	to := from.AddDate(0, 0, c.lookaheadDays)

	bars, err := c.fetchBars(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	for _, bar := range bars {
		if bar.Date <= mentionDate {
			continue
		}
		date, err := time.Parse(dateLayout, bar.Date)
		if err != nil {
			return nil, fmt.Errorf("eodhd bar has bad date %q: %w", bar.Date, err)
		}
		return &contracts.PricePoint{Date: date, Raw: bar.Open, Adjusted: bar.AdjustedClose}, nil
	}
	return nil, nil
}

// LatestPrice returns the most recent session. Raw is the close.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (*contracts.PricePoint, error) {
	to := c.now().UTC()
	from := to.AddDate(0, 0, -latestLookbackDays)

	bars, err := c.fetchBars(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}

	last := bars[len(bars)-1]
	date, err := time.Parse(dateLayout, last.Date)
	if err != nil {
		return nil, fmt.Errorf("eodhd bar has bad date %q: %w", last.Date, err)
	}
	return &contracts.PricePoint{Date: date, Raw: last.Close, Adjusted: last.AdjustedClose}, nil
}

// History returns the daily series between two dates, ascending.
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time) ([]contracts.PricePoint, error) {
	bars, err := c.fetchBars(ctx, symbol, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	points := make([]contracts.PricePoint, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse(dateLayout, bar.Date)
		if err != nil {
			return nil, fmt.Errorf("eodhd bar has bad date %q: %w", bar.Date, err)
		}
		points = append(points, contracts.PricePoint{Date: date, Raw: bar.Close, Adjusted: bar.AdjustedClose})
	}
	return points, nil
}

var _ contracts.MarketDataGateway = (*Client)(nil)
