package formula

import (
	"math"

	"tradecalc/core/precision"
)

// Shingle defaults for a common three-tab bundle
const (
	DefaultBundleCoverageFt2 = 33.3
	DefaultShinglesPerBundle = 29

	// SquareFt2 is one roofing square
	SquareFt2 = 100
)

// ShingleInput is a roof footprint in feet with its slope multiplier
type ShingleInput struct {
	LengthFt          float64 `json:"length_ft"`
	WidthFt           float64 `json:"width_ft"`
	SlopeMultiplier   float64 `json:"slope_multiplier"`
	BundleCoverageFt2 float64 `json:"bundle_coverage_ft2"`
	ShinglesPerBundle int64   `json:"shingles_per_bundle"`
}

// ShingleResult is the roof surface and material to order
type ShingleResult struct {
	FootprintFt2    float64 `json:"footprint_ft2"`
	SlopeMultiplier float64 `json:"slope_multiplier"`
	RoofAreaFt2     float64 `json:"roof_area_ft2"`
	Squares         float64 `json:"squares"`
	Bundles         int64   `json:"bundles"`
	Shingles        int64   `json:"shingles"`
}

// Shingle computes the sloped roof area, squares, and whole bundles needed.
// A zero coverage or bundle size falls back to the three-tab defaults so the
// bundle count stays finite.
func Shingle(in ShingleInput) ShingleResult {
	coverage := in.BundleCoverageFt2
	if coverage == 0 {
		coverage = DefaultBundleCoverageFt2
	}
	perBundle := in.ShinglesPerBundle
	if perBundle == 0 {
		perBundle = DefaultShinglesPerBundle
	}

	footprint := in.LengthFt * in.WidthFt
	area := footprint * in.SlopeMultiplier
	bundles := precision.Ceil(area / coverage)

	return ShingleResult{
		FootprintFt2:    precision.Round(footprint, precision.Hundreds),
		SlopeMultiplier: precision.Round(in.SlopeMultiplier, precision.Ratio),
		RoofAreaFt2:     precision.Round(area, precision.Hundreds),
		Squares:         precision.Round(area/SquareFt2, precision.Hundreds),
		Bundles:         bundles,
		Shingles:        saturatingMul(bundles, perBundle),
	}
}

func saturatingMul(a, b int64) int64 {
	f := float64(a) * float64(b)
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return a * b
}
