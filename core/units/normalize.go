package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Raw inputs are read the way a form field is read: the longest leading
// decimal prefix counts, trailing text is ignored ("12 ft" reads as 12).
var (
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// Quantity is a raw measurement paired with its unit tag
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// NewQuantity sanitizes raw into a finite value, defaulting to 0
func NewQuantity(raw string, unit Unit) Quantity {
	return Quantity{
		Value: ParseOrDefault(raw, 0),
		Unit:  unit,
	}
}

// In returns the quantity expressed in the canonical unit of kind
func (q Quantity) In(kind Kind) float64 {
	return q.Value * Factor(kind, q.Unit)
}

// Normalize parses raw and converts it to the canonical unit of kind.
// Unparseable input is 0 and an unknown unit is identity, so the result is
// always a number.
func Normalize(raw string, unit Unit, kind Kind) float64 {
	return NewQuantity(raw, unit).In(kind)
}

// ParseOrDefault reads the leading decimal number in raw. Empty, unparseable
// and non-finite input yield fallback.
func ParseOrDefault(raw string, fallback float64) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// IsNumeric reports whether raw starts with a finite decimal number
func IsNumeric(raw string) bool {
	return !math.IsNaN(ParseOrDefault(raw, math.NaN()))
}

// ParseNonZero is ParseOrDefault where a parsed zero also yields fallback.
// Used for divisors and multipliers whose zero value is meaningless.
func ParseNonZero(raw string, fallback float64) float64 {
	v := ParseOrDefault(raw, 0)
	if v == 0 {
		return fallback
	}
	return v
}

// ParseIntOrDefault reads the leading integer in raw ("29.7" reads as 29).
// Empty, unparseable, out of range and zero input yield fallback.
func ParseIntOrDefault(raw string, fallback int64) int64 {
	m := intPrefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return fallback
	}

	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

// Finite replaces NaN and ±Inf with 0 for values that did not come from a
// string, e.g. numbers decoded from JSON or HCL.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
