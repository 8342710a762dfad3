package util

import (
	"math"

	"github.com/shopspring/decimal"
)

// Display precision for values handed to the dashboard.
const (
	MoneyPlaces   = 2
	PercentPlaces = 1
	RatingPlaces  = 1
)

// Round rounds v half away from zero to places decimals using decimal
// arithmetic, so 1.005 rounds to 1.01 rather than the binary-float 1.00.
// NaN and infinities become 0.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Format renders v with exactly places decimals, e.g. "133.33".
func Format(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Money rounds a currency amount for display.
func Money(v float64) string {
	return Format(v, MoneyPlaces)
}

// Percent rounds a 0-100 percentage for display.
func Percent(v float64) string {
	return Format(v, PercentPlaces)
}

// Rating rounds an average rating for display.
func Rating(v float64) string {
	return Format(v, RatingPlaces)
}
