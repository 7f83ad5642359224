package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CompanyName scrapes the display name from the company page heading,
// which renders as "Apple Inc. (AAPL)". Any failure falls back to a
// name derived from the symbol; this method never reports an error.
func (c *Client) CompanyName(ctx context.Context, symbol string) string {
	upper := strings.ToUpper(symbol)
	if cached, ok := c.companyNames.Load(upper); ok {
		return cached.(string)
	}

	name := c.scrapeCompanyName(ctx, upper)
	if name == "" {
		name = fallbackName(upper)
	}
	c.companyNames.Store(upper, name)
	return name
}

func (c *Client) scrapeCompanyName(ctx context.Context, symbol string) string {
	endpoint := fmt.Sprintf("%s/%s/", c.companyBaseURL, strings.ToLower(symbol))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("company page fetch failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("company page parse failed")
		return ""
	}

	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	if heading == "" {
		return ""
	}

	// Strip the trailing "(SYMBOL)" the heading carries.
	if idx := strings.LastIndex(heading, "("); idx > 0 {
		heading = strings.TrimSpace(heading[:idx])
	}
	return heading
}

func fallbackName(symbol string) string {
	return symbol + " Inc."
}
