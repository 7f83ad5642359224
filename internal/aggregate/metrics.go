package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
)

// CalculateReturn is the percentage return between two adjusted prices.
// A zero beginning value yields zero rather than a division blowup.
func CalculateReturn(begin, end float64) float64 {
	if begin == 0 {
		return 0
	}
	return (end - begin) / begin * 100
}

// Alpha is the excess return over the benchmark, in percentage points.
func Alpha(stockReturn, benchmarkReturn float64) float64 {
	return stockReturn - benchmarkReturn
}

// HitOrMiss classifies a trade by its alpha. Matching the benchmark
// exactly counts as a Hit.
func HitOrMiss(alpha float64) contracts.Outcome {
	if alpha >= 0 {
		return contracts.OutcomeHit
	}
	return contracts.OutcomeMiss
}

// IsWin reports whether a trade made money in absolute terms. Flat is
// not a win; this is stricter than the alpha boundary on purpose.
func IsWin(stockReturn float64) bool {
	return stockReturn > 0
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatSignedPercent renders a return as a signed one-decimal percent
// string, e.g. "+12.5%" or "-8.0%".
func FormatSignedPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(1)
	if d.IsNegative() {
		return d.StringFixed(1) + "%"
	}
	return "+" + d.StringFixed(1) + "%"
}
