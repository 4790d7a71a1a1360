package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorLengthFeet(t *testing.T) {
	cases := []struct {
		unit Unit
		want float64
	}{
		{Feet, 1},
		{Inches, 1.0 / 12},
		{Meters, 3.28084},
		{Centimeters, 0.0328084},
		{Millimeters, 0.00328084},
	}
	for _, tc := range cases {
		t.Run(string(tc.unit), func(t *testing.T) {
			assert.InDelta(t, tc.want, Factor(Length, tc.unit), 1e-12)
		})
	}
}

func TestFactorLengthMeters(t *testing.T) {
	assert.Equal(t, 1.0, Factor(LengthSI, Meters))
	assert.Equal(t, 0.3048, Factor(LengthSI, Feet))
	assert.Equal(t, 0.0254, Factor(LengthSI, Inches))
	assert.Equal(t, 0.001, Factor(LengthSI, Millimeters))
}

func TestFactorDensityAliases(t *testing.T) {
	assert.Equal(t, 1.0, Factor(Density, "kg/m³"))
	assert.Equal(t, 1.0, Factor(Density, "KG/M3"))
	assert.Equal(t, 16.018463, Factor(Density, "lb/ft³"))
	assert.Equal(t, 16.018463, Factor(Density, " lb/ft^3 "))
}

func TestFactorAreaIsSquareOfLength(t *testing.T) {
	assert.InDelta(t, FeetPerMeter*FeetPerMeter, Factor(Area, SquareMeters), 1e-12)
	assert.InDelta(t, 1.0/144, Factor(Area, "in²"), 1e-12)
	assert.Equal(t, 1.0, Factor(Area, "sqft"))
}

// TestFactorUnknownIsIdentity keeps the table total: no tag is an error
func TestFactorUnknownIsIdentity(t *testing.T) {
	assert.Equal(t, 1.0, Factor(Length, "furlong"))
	assert.Equal(t, 1.0, Factor(Density, ""))
	assert.Equal(t, 1.0, Factor("volume", Feet))
	assert.False(t, Known(Length, "furlong"))
	assert.True(t, Known(Length, "Feet"))
}

func TestSupportedFactorsArePositive(t *testing.T) {
	for _, kind := range []Kind{Length, LengthSI, Area, Density} {
		list := Supported(kind)
		require.NotEmpty(t, list, kind)
		assert.Equal(t, 1.0, Factor(kind, list[0]), "canonical unit of %s", kind)
		for _, u := range list {
			assert.Greater(t, Factor(kind, u), 0.0, "%s/%s", kind, u)
			assert.True(t, Known(kind, u))
		}
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, Feet, Canonical(Length))
	assert.Equal(t, Meters, Canonical(LengthSI))
	assert.Equal(t, SquareFeet, Canonical(Area))
	assert.Equal(t, KilogramsPerCubicMeter, Canonical(Density))
	assert.Equal(t, Unit(""), Canonical("volume"))
}
