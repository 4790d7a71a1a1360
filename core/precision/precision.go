// Package precision implements the rounding policy applied to estimator
// outputs. Rounding is done in decimal so that values such as 1.005 round
// the way they read, not the way their binary approximation does.
package precision

import (
	"math"

	"github.com/shopspring/decimal"
)

// Decimal places used by the estimators
const (
	Whole    int32 = 0
	Hundreds int32 = 2
	Ratio    int32 = 4
)

var half = decimal.NewFromFloat(0.5)

// Round rounds v half-up (toward +∞ on ties) to places decimals.
// NaN, ±Inf and ±0 are returned unchanged.
func Round(v float64, places int32) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	d := decimal.NewFromFloat(v)
	return d.Shift(places).Add(half).Floor().Shift(-places).InexactFloat64()
}

// RoundDecimal is Round returning the exact decimal, for renderers that
// print fixed places without float noise.
func RoundDecimal(v float64, places int32) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Shift(places).Add(half).Floor().Shift(-places)
}

// Fixed formats v with exactly places decimals after rounding.
// Non-finite values are spelled out as strconv does.
func Fixed(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return RoundDecimal(v, places).StringFixed(places)
}

// countULPs is how many float steps above a whole number a quotient may sit
// and still count as that whole number (600 × 1.12 ÷ 32 is 21, not
// 21.000000000000004). Anything further out is a real fraction.
const countULPs = 4

// Ceil is the count policy: the smallest whole number ≥ v. NaN counts as 0
// and values outside the int64 range saturate.
func Ceil(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}

	c := math.Ceil(v)
	if f := math.Floor(v); f != c && v-f <= countULPs*ulp(f) {
		c = f
	}
	switch {
	case c >= 9.223372036854775807e18:
		return math.MaxInt64
	case c < -9.223372036854775808e18:
		return math.MinInt64
	}
	return int64(c)
}

// RoundCount rounds v half-up to a whole count, with Ceil's saturation rules
func RoundCount(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	return Ceil(math.Floor(v + 0.5))
}

// ulp is the gap between |f| and the next float above it
func ulp(f float64) float64 {
	a := math.Abs(f)
	return math.Nextafter(a, math.Inf(1)) - a
}
