package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecalc/core/pitch"
	"tradecalc/core/units"
)

// =============================================================================
// AIRFLOW
// =============================================================================

func TestAirflow(t *testing.T) {
	got := Airflow(AirflowInput{FloorAreaFt2: 200, CeilingHeightFt: 8, ACH: 8})
	assert.Equal(t, 213.33, got.CFM)
	assert.Equal(t, 1600.0, got.VolumeFt3)
}

// TestAirflowUnitInvariance converts a metric floor area through the unit
// table and expects the same airflow as the native imperial inputs.
func TestAirflowUnitInvariance(t *testing.T) {
	native := Airflow(AirflowInput{FloorAreaFt2: 200, CeilingHeightFt: 8, ACH: 8})

	metricArea := 200 / units.Factor(units.Area, units.SquareMeters)
	converted := Airflow(AirflowInput{
		FloorAreaFt2:    metricArea * units.Factor(units.Area, units.SquareMeters),
		CeilingHeightFt: units.Normalize("96", units.Inches, units.Length),
		ACH:             8,
	})
	assert.InDelta(t, native.CFM, converted.CFM, 0.01)

	approx := Airflow(AirflowInput{
		FloorAreaFt2:    units.Normalize("18.58", units.SquareMeters, units.Area),
		CeilingHeightFt: 8,
		ACH:             8,
	})
	assert.InDelta(t, native.CFM, approx.CFM, 0.05)
}

// =============================================================================
// THERMAL LOAD
// =============================================================================

func TestThermalLoadReference(t *testing.T) {
	got := ThermalLoad(ThermalLoadInput{
		SquareFeet:      2000,
		CeilingHeightFt: 10,
		Occupants:       4,
		Windows:         12,
		Doors:           2,
		Insulation:      InsulationAverage,
	})
	assert.Equal(t, int64(34400), got.BTU)
	assert.Equal(t, 2.87, got.Tons)
	assert.Equal(t, 1.0, got.InsulationFactor)
}

func TestThermalLoadInsulation(t *testing.T) {
	in := ThermalLoadInput{SquareFeet: 1000, CeilingHeightFt: 10}

	cases := map[Insulation]int64{
		InsulationPoor:      12000,
		InsulationAverage:   10000,
		InsulationGood:      8500,
		InsulationExcellent: 7500,
		"mystery":           10000,
	}
	for grade, want := range cases {
		in.Insulation = grade
		assert.Equal(t, want, ThermalLoad(in).BTU, grade)
	}

	in.Insulation = InsulationPoor
	assert.Equal(t, 1.0, ThermalLoad(in).Tons)
}

func TestParseInsulation(t *testing.T) {
	assert.Equal(t, InsulationGood, ParseInsulation(" Good "))
	assert.Equal(t, InsulationAverage, ParseInsulation(""))
	assert.Equal(t, InsulationAverage, ParseInsulation("triple-glazed"))
	assert.Len(t, Insulations(), 4)
}

// =============================================================================
// CYLINDER
// =============================================================================

func TestCylinderReference(t *testing.T) {
	got := Cylinder(CylinderInput{
		DiameterM:   units.Normalize("6", units.Inches, units.LengthSI),
		LengthM:     units.Normalize("10", units.Feet, units.LengthSI),
		DensityKgM3: units.Normalize("997", "kg/m³", units.Density),
	})
	assert.Equal(t, 0.0556, got.VolumeM3)
	assert.Equal(t, 55.43, got.MassKg)
	assert.Equal(t, 55.6, got.VolumeLiters)
	assert.Equal(t, 14.69, got.VolumeGallons)
}

func TestCylinderImperialDensity(t *testing.T) {
	got := Cylinder(CylinderInput{DiameterM: 1, LengthM: 1, DensityKgM3: units.Normalize("62.4", units.PoundsPerCubicFoot, units.Density)})
	assert.Equal(t, 0.7854, got.VolumeM3)
	assert.InDelta(t, math.Pi/4*62.4*16.018463, got.MassKg, 0.005)
}

// =============================================================================
// SHEATHING
// =============================================================================

func TestSheathingReference(t *testing.T) {
	m, ok := pitch.Preset("6:12")
	require.True(t, ok)

	got := Sheathing(SheathingInput{LengthFt: 20, WidthFt: 30, PitchMultiplier: m})
	assert.Equal(t, 600.0, got.BaseAreaFt2)
	assert.Equal(t, 672.0, got.AdjustedAreaFt2)
	assert.Equal(t, int64(21), got.Panels)
	assert.Equal(t, Thickness7_16, got.Thickness)
}

// TestSheathingAlwaysRoundsUp keeps partial panels from being dropped
func TestSheathingAlwaysRoundsUp(t *testing.T) {
	got := Sheathing(SheathingInput{LengthFt: 8, WidthFt: 4.01, PitchMultiplier: 1})
	assert.Equal(t, int64(2), got.Panels)

	got = Sheathing(SheathingInput{LengthFt: 8, WidthFt: 4, PitchMultiplier: 1})
	assert.Equal(t, int64(1), got.Panels)
}

func TestParseThickness(t *testing.T) {
	assert.Equal(t, Thickness5_8, ParseThickness(`5/8"`))
	assert.Equal(t, Thickness1_2, ParseThickness("1/2"))
	assert.Equal(t, Thickness7_16, ParseThickness("3/4"))
}

// =============================================================================
// SHINGLE
// =============================================================================

func TestShingleReference(t *testing.T) {
	got := Shingle(ShingleInput{
		LengthFt:          30,
		WidthFt:           20,
		SlopeMultiplier:   pitch.Multiplier(pitch.Spec{Kind: pitch.Ratio, Value: 6}),
		BundleCoverageFt2: 33.3,
		ShinglesPerBundle: 29,
	})
	assert.Equal(t, 600.0, got.FootprintFt2)
	assert.Equal(t, 1.118, got.SlopeMultiplier)
	assert.Equal(t, 670.82, got.RoofAreaFt2)
	assert.Equal(t, 6.71, got.Squares)
	assert.Equal(t, int64(21), got.Bundles)
	assert.Equal(t, int64(609), got.Shingles)
}

func TestShingleDefaultsForZeroBundleFields(t *testing.T) {
	got := Shingle(ShingleInput{LengthFt: 10, WidthFt: 10, SlopeMultiplier: 1})
	assert.Equal(t, int64(4), got.Bundles)
	assert.Equal(t, int64(4*DefaultShinglesPerBundle), got.Shingles)
}

// TestShingleSteepAngleStaysCountable feeds the unclamped 90° multiplier
// through and expects saturated, not wrapped, counts.
func TestShingleSteepAngleStaysCountable(t *testing.T) {
	got := Shingle(ShingleInput{
		LengthFt:        1e4,
		WidthFt:         1e4,
		SlopeMultiplier: pitch.Multiplier(pitch.Spec{Kind: pitch.Angle, Value: 90}),
	})
	assert.Greater(t, got.RoofAreaFt2, 1e20)
	assert.Equal(t, int64(math.MaxInt64), got.Bundles)
	assert.Equal(t, int64(math.MaxInt64), got.Shingles)
}

func TestSaturatingMul(t *testing.T) {
	assert.Equal(t, int64(609), saturatingMul(21, 29))
	assert.Equal(t, int64(0), saturatingMul(0, 29))
	assert.Equal(t, int64(math.MaxInt64), saturatingMul(math.MaxInt64, 2))
	assert.Equal(t, int64(math.MinInt64), saturatingMul(math.MaxInt64, -2))
	assert.Equal(t, int64(-58), saturatingMul(-2, 29))
}

// =============================================================================
// CROSS-CUTTING PROPERTIES
// =============================================================================

// TestZeroInputsYieldZero runs every evaluator on its zero value
func TestZeroInputsYieldZero(t *testing.T) {
	assert.Equal(t, AirflowResult{}, Airflow(AirflowInput{}))

	load := ThermalLoad(ThermalLoadInput{})
	assert.Equal(t, int64(0), load.BTU)
	assert.Equal(t, 0.0, load.Tons)

	assert.Equal(t, CylinderResult{}, Cylinder(CylinderInput{}))

	sh := Sheathing(SheathingInput{})
	assert.Equal(t, 0.0, sh.BaseAreaFt2)
	assert.Equal(t, 0.0, sh.AdjustedAreaFt2)
	assert.Equal(t, int64(0), sh.Panels)

	sg := Shingle(ShingleInput{SlopeMultiplier: 1})
	assert.Equal(t, 0.0, sg.RoofAreaFt2)
	assert.Equal(t, 0.0, sg.Squares)
	assert.Equal(t, int64(0), sg.Bundles)
	assert.Equal(t, int64(0), sg.Shingles)
}

func TestNegativeInputsDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		Airflow(AirflowInput{FloorAreaFt2: -10, CeilingHeightFt: 8, ACH: 4})
		ThermalLoad(ThermalLoadInput{SquareFeet: -10, Doors: -3})
		Cylinder(CylinderInput{DiameterM: -1, LengthM: 2, DensityKgM3: -997})
		Sheathing(SheathingInput{LengthFt: -20, WidthFt: 30, PitchMultiplier: 1.12})
		Shingle(ShingleInput{LengthFt: -30, WidthFt: 20, SlopeMultiplier: 1, BundleCoverageFt2: -33.3, ShinglesPerBundle: -29})
	})
}

func TestIdempotent(t *testing.T) {
	in := ShingleInput{LengthFt: 42.5, WidthFt: 27, SlopeMultiplier: 1.2, BundleCoverageFt2: 32.8, ShinglesPerBundle: 21}
	assert.Equal(t, Shingle(in), Shingle(in))

	load := ThermalLoadInput{SquareFeet: 1800, CeilingHeightFt: 9, Occupants: 3, Windows: 9, Doors: 2, Insulation: InsulationGood}
	assert.Equal(t, ThermalLoad(load), ThermalLoad(load))
}

func TestMonotonic(t *testing.T) {
	prevLoad := int64(-1)
	prevBundles := int64(-1)
	prevPanels := int64(-1)
	prevCFM := -1.0
	for i := 0; i < 50; i++ {
		x := float64(i)

		cfm := Airflow(AirflowInput{FloorAreaFt2: 100 + x*7, CeilingHeightFt: 8, ACH: 6}).CFM
		assert.GreaterOrEqual(t, cfm, prevCFM)
		prevCFM = cfm

		btu := ThermalLoad(ThermalLoadInput{SquareFeet: 1500, CeilingHeightFt: 8, Occupants: x, Windows: x, Doors: x}).BTU
		assert.GreaterOrEqual(t, btu, prevLoad)
		prevLoad = btu

		panels := Sheathing(SheathingInput{LengthFt: 30, WidthFt: 20, PitchMultiplier: 1 + x/50}).Panels
		assert.GreaterOrEqual(t, panels, prevPanels)
		prevPanels = panels

		slope := pitch.Multiplier(pitch.Spec{Kind: pitch.Ratio, Value: x / 2})
		bundles := Shingle(ShingleInput{LengthFt: 30, WidthFt: 20, SlopeMultiplier: slope}).Bundles
		assert.GreaterOrEqual(t, bundles, prevBundles)
		prevBundles = bundles
	}
}
