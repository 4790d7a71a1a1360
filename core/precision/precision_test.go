package precision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := []struct {
		name   string
		v      float64
		places int32
		want   float64
	}{
		{"two places", 670.8203932499369, Hundreds, 670.82},
		{"half up", 2.345, Hundreds, 2.35},
		{"binary tie", 1.005, Hundreds, 1.01},
		{"four places", 0.05559618, Ratio, 0.0556},
		{"whole", 35399.5, Whole, 35400},
		{"negative tie goes up", -2.5, Whole, -2},
		{"negative", -2.346, Hundreds, -2.35},
		{"already exact", 6.71, Hundreds, 6.71},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Round(tc.v, tc.places))
		})
	}
}

// TestRoundPassesThroughSpecialValues documents that the formatter never
// rewrites values it cannot represent.
func TestRoundPassesThroughSpecialValues(t *testing.T) {
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
	assert.True(t, math.IsInf(Round(math.Inf(-1), 2), -1))

	negZero := math.Copysign(0, -1)
	assert.True(t, math.Signbit(Round(negZero, 2)))
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "2.95", Fixed(2.95, 2))
	assert.Equal(t, "0.00", Fixed(0, 2))
	assert.Equal(t, "0.0556", Fixed(0.055596, 4))
	assert.Equal(t, "21", Fixed(21, 0))
	assert.Equal(t, "NaN", Fixed(math.NaN(), 2))
	assert.Equal(t, "+Inf", Fixed(math.Inf(1), 2))
}

func TestCeil(t *testing.T) {
	assert.Equal(t, int64(21), Ceil(672.0/32))

	area, multiplier := 600.0, 1.12
	assert.Equal(t, int64(21), Ceil(area*multiplier/32))
	assert.Equal(t, int64(2), Ceil(1.0000001))
	assert.Equal(t, int64(21), Ceil(20.0001))
	assert.Equal(t, int64(20), Ceil(20))
	assert.Equal(t, int64(1), Ceil(5e-10))
	assert.Equal(t, int64(1), Ceil(1e-300))
	assert.Equal(t, int64(10000001), Ceil(1e7+0.005))
	assert.Equal(t, int64(22), Ceil(21+1e-12))
	assert.Equal(t, int64(21), Ceil(math.Nextafter(21, 22)))
	assert.Equal(t, int64(0), Ceil(0))
	assert.Equal(t, int64(-1), Ceil(-1.5))
	assert.Equal(t, int64(0), Ceil(math.NaN()))
	assert.Equal(t, int64(math.MaxInt64), Ceil(math.Inf(1)))
	assert.Equal(t, int64(math.MinInt64), Ceil(math.Inf(-1)))
	assert.Equal(t, int64(math.MaxInt64), Ceil(1e30))
}

func TestRoundCount(t *testing.T) {
	assert.Equal(t, int64(35400), RoundCount(35400.0))
	assert.Equal(t, int64(3), RoundCount(2.5))
	assert.Equal(t, int64(-2), RoundCount(-2.5))
	assert.Equal(t, int64(0), RoundCount(math.NaN()))
}
