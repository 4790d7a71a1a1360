package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplierRatio(t *testing.T) {
	assert.InDelta(t, 1.118034, Multiplier(Spec{Kind: Ratio, Value: 6}), 1e-6)
	assert.Equal(t, 1.0, Multiplier(Spec{Kind: Ratio, Value: 0}))
	assert.InDelta(t, math.Sqrt2, Multiplier(Spec{Kind: Ratio, Value: 12}), 1e-12)
}

func TestMultiplierPercent(t *testing.T) {
	assert.InDelta(t, 1.118034, Multiplier(Spec{Kind: Percent, Value: 50}), 1e-6)
	assert.InDelta(t, math.Sqrt2, Multiplier(Spec{Kind: Percent, Value: 100}), 1e-12)
}

func TestMultiplierAngle(t *testing.T) {
	assert.InDelta(t, 1.0, Multiplier(Spec{Kind: Angle, Value: 0}), 1e-12)
	assert.InDelta(t, 2.0, Multiplier(Spec{Kind: Angle, Value: 60}), 1e-9)
	assert.InDelta(t, math.Sqrt2, Multiplier(Spec{Kind: Angle, Value: 45}), 1e-12)
}

// TestMultiplierAngleUnclamped documents that steep angles are passed through
func TestMultiplierAngleUnclamped(t *testing.T) {
	assert.Greater(t, Multiplier(Spec{Kind: Angle, Value: 90}), 1e15)
	assert.Less(t, Multiplier(Spec{Kind: Angle, Value: 120}), 0.0)
}

// TestRepresentationsDiffer keeps the ratio and angle formulas independent:
// 6:12 is 26.565°, and the two multipliers agree only approximately.
func TestRepresentationsDiffer(t *testing.T) {
	ratio := Multiplier(Spec{Kind: Ratio, Value: 6})
	angle := Multiplier(Spec{Kind: Angle, Value: 26.5})
	assert.NotEqual(t, ratio, angle)
	assert.InDelta(t, ratio, angle, 0.01)
}

func TestMultiplierIsAtLeastOne(t *testing.T) {
	for _, k := range Kinds() {
		for _, v := range []float64{-30, -1, 0, 1, 6, 45, 89} {
			assert.GreaterOrEqual(t, Multiplier(Spec{Kind: k, Value: v}), 1.0, "%s %v", k, v)
		}
	}
}

func TestMultiplierMonotonic(t *testing.T) {
	for _, k := range Kinds() {
		prev := 0.0
		for v := 0.0; v < 80; v += 2.5 {
			m := Multiplier(Spec{Kind: k, Value: v})
			assert.GreaterOrEqual(t, m, prev, "%s %v", k, v)
			prev = m
		}
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("X12")
	require.True(t, ok)
	assert.Equal(t, Ratio, k)

	k, ok = ParseKind("degrees")
	require.True(t, ok)
	assert.Equal(t, Angle, k)

	k, ok = ParseKind("%")
	require.True(t, ok)
	assert.Equal(t, Percent, k)

	_, ok = ParseKind("slope")
	assert.False(t, ok)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Spec{Kind: Ratio, Value: 6}, Resolve("bogus", "6", Ratio))
	assert.Equal(t, Spec{Kind: Angle, Value: 0}, Resolve("angle", "steep", Ratio))
	assert.Equal(t, 1.0, Multiplier(Spec{Kind: "bogus", Value: 6}))
}

func TestPreset(t *testing.T) {
	m, ok := Preset(DefaultPreset)
	require.True(t, ok)
	assert.Equal(t, 1.12, m)

	m, ok = Preset(" 10/12 ")
	require.True(t, ok)
	assert.Equal(t, 1.30, m)

	_, ok = Preset("12:12")
	assert.False(t, ok)

	list := Presets()
	list[0].Multiplier = 9
	m, _ = Preset("2:12")
	assert.Equal(t, 1.02, m)
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		label string
		rise  float64
		ok    bool
	}{
		{"7:12", 7, true},
		{" 7 / 12 ", 7, true},
		{"12:12", 12, true},
		{"3.5:6", 7, true},
		{"0:12", 0, true},
		{"1.15", 0, false},
		{"7:0", 0, false},
		{"-2:12", 0, false},
		{"NaN:12", 0, false},
		{"steep", 0, false},
	}

	for _, tt := range tests {
		rise, ok := ParseRatio(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.rise, rise, tt.label)
	}
}
