package extract

// nonEquitySymbols are $-prefixed tokens that look like tickers but are
// not equities: currencies, economic indicators, common abbreviations,
// and quarter labels.
var nonEquitySymbols = map[string]struct{}{
	// Currencies
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CAD": {}, "AUD": {}, "CHF": {},
	// Economic indicators
	"GDP": {}, "CPI": {}, "PCE": {}, "PPI": {},
	// Common abbreviations
	"CEO": {}, "CFO": {}, "IPO": {}, "ETF": {}, "ESG": {},
	// Time periods
	"YOY": {}, "QOQ": {},
}

// IsNonEquity reports whether a symbol is on the non-equity blocklist.
func IsNonEquity(symbol string) bool {
	_, blocked := nonEquitySymbols[symbol]
	return blocked
}
