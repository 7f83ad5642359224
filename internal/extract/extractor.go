package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
)

// keywordConfidence is the fixed confidence for keyword-based extraction.
// A future model-backed extractor would produce calibrated values.
const keywordConfidence = 0.8

// maxTickerLen caps cashtag symbols at 5 uppercase letters.
const maxTickerLen = 5

var (
	// tickerPattern matches a cashtag; length is checked separately so
	// $TOOLONG is rejected instead of truncated.
	tickerPattern = regexp.MustCompile(`\$([A-Z]+)`)

	// pricePattern captures a price quoted after "at" or "@", e.g.
	// "bought at $150.25" or "added @ 98".
	pricePattern = regexp.MustCompile(`(?i)(?:at|@)\s*\$?(\d+(?:\.\d{1,2})?)`)
)

var (
	bullishKeywords = []string{
		"buy", "buying", "bought", "long", "accumulate", "accumulating",
		"bullish", "upside", "positive", "strong buy", "add", "overweight",
		"attractive", "undervalued", "opportunity",
	}
	bearishKeywords = []string{
		"sell", "selling", "sold", "short", "shorting", "bearish",
		"downside", "negative", "trim", "reduce", "exit", "exiting",
		"underweight", "overvalued", "avoid", "caution",
	}
)

// KeywordExtractor derives trade signals from post text with cashtag
// matching and keyword intent inference. It is stateless and safe for
// concurrent use.
type KeywordExtractor struct {
	spamThreshold int
}

// NewKeywordExtractor builds an extractor. Posts mentioning more than
// spamThreshold distinct tickers are treated as spam and yield nothing.
func NewKeywordExtractor(spamThreshold int) *KeywordExtractor {
	return &KeywordExtractor{spamThreshold: spamThreshold}
}

// Extract returns one signal per distinct ticker in the post, all
// sharing the post-level intent and price. Spam posts return nil.
func (e *KeywordExtractor) Extract(text string) []contracts.Signal {
	tickers := ExtractTickers(text)
	if len(tickers) == 0 {
		return nil
	}
	if len(tickers) > e.spamThreshold {
		return nil
	}

	intent := InferIntent(text)
	price := ExtractPrice(text)

	signals := make([]contracts.Signal, 0, len(tickers))
	for _, ticker := range tickers {
		signals = append(signals, contracts.Signal{
			Ticker:     ticker,
			Intent:     intent,
			Price:      price,
			Confidence: keywordConfidence,
		})
	}
	return signals
}

// ExtractTickers returns the distinct cashtag symbols in first-seen
// order. Symbols longer than 5 letters and non-equity tokens are
// dropped.
func ExtractTickers(text string) []string {
	matches := tickerPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var tickers []string
	for _, m := range matches {
		symbol := m[1]
		if len(symbol) > maxTickerLen {
			continue
		}
		if IsNonEquity(symbol) {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		tickers = append(tickers, symbol)
	}
	return tickers
}

// InferIntent classifies the post's stance from keyword matches.
// Bearish keywords win when both appear; the Short direction requires a
// literal "short" so "sell" alone reads as closing a long, not opening
// a short.
func InferIntent(text string) contracts.TradeIntent {
	lowered := strings.ToLower(text)

	for _, kw := range bearishKeywords {
		if strings.Contains(lowered, kw) {
			direction := contracts.DirectionLong
			if strings.Contains(lowered, "short") {
				direction = contracts.DirectionShort
			}
			return contracts.TradeIntent{Action: contracts.ActionSell, Direction: direction}
		}
	}
	for _, kw := range bullishKeywords {
		if strings.Contains(lowered, kw) {
			return contracts.TradeIntent{Action: contracts.ActionBuy, Direction: contracts.DirectionLong}
		}
	}
	return contracts.TradeIntent{Action: contracts.ActionHold, Direction: contracts.DirectionLong}
}

// ExtractPrice returns the first price quoted after "at" or "@", or nil
// when the post names no price.
func ExtractPrice(text string) *float64 {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &price
}
