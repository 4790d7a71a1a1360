package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrDefault(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"12", 12},
		{" 12.5 ", 12.5},
		{"12 ft", 12},
		{".5", 0.5},
		{"-3", -3},
		{"1e3", 1000},
		{"1e", 1},
		{"1e999", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseOrDefault(tc.raw, 0))
		})
	}
}

func TestParseNonZero(t *testing.T) {
	assert.Equal(t, 33.3, ParseNonZero("", 33.3))
	assert.Equal(t, 33.3, ParseNonZero("0", 33.3))
	assert.Equal(t, 33.3, ParseNonZero("0.0", 33.3))
	assert.Equal(t, 25.0, ParseNonZero("25", 33.3))
	assert.Equal(t, -2.0, ParseNonZero("-2", 33.3))
}

func TestParseIntOrDefault(t *testing.T) {
	assert.Equal(t, int64(29), ParseIntOrDefault("", 29))
	assert.Equal(t, int64(29), ParseIntOrDefault("x", 29))
	assert.Equal(t, int64(29), ParseIntOrDefault("0", 29))
	assert.Equal(t, int64(26), ParseIntOrDefault("26.9", 29))
	assert.Equal(t, int64(3), ParseIntOrDefault("3 per", 29))
	assert.Equal(t, int64(29), ParseIntOrDefault("99999999999999999999", 29))
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.5, Normalize("6", Inches, Length), 1e-12)
	assert.InDelta(t, 0.1524, Normalize("6", Inches, LengthSI), 1e-12)
	assert.InDelta(t, 997.0, Normalize("997", "kg/m³", Density), 1e-12)
	assert.Equal(t, 0.0, Normalize("", Meters, Length))
	assert.Equal(t, 7.0, Normalize("7", "parsec", Length))
}

func TestQuantityIn(t *testing.T) {
	q := NewQuantity("10", Feet)
	assert.InDelta(t, 3.048, q.In(LengthSI), 1e-12)
	assert.Equal(t, 10.0, q.In(Length))
}

func TestFinite(t *testing.T) {
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 2.5, Finite(2.5))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("0"))
	assert.True(t, IsNumeric("6 in"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("six"))
	assert.False(t, IsNumeric("1e999"))
}
