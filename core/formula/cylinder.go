package formula

import (
	"math"

	"tradecalc/core/precision"
)

// Volume conversions from cubic meters
const (
	LitersPerCubicMeter    = 1000
	USGallonsPerCubicMeter = 264.172052
)

// CylinderInput is a pipe run filled with fluid, in SI units
type CylinderInput struct {
	DiameterM   float64 `json:"diameter_m"`
	LengthM     float64 `json:"length_m"`
	DensityKgM3 float64 `json:"density_kg_m3"`
}

// CylinderResult is the fluid volume and mass held by the run
type CylinderResult struct {
	VolumeM3      float64 `json:"volume_m3"`
	VolumeLiters  float64 `json:"volume_liters"`
	VolumeGallons float64 `json:"volume_gallons"`
	MassKg        float64 `json:"mass_kg"`
}

// Cylinder computes the internal volume of a pipe and the mass of the fluid
// filling it. Mass uses the unrounded volume.
func Cylinder(in CylinderInput) CylinderResult {
	r := in.DiameterM / 2
	volume := math.Pi * r * r * in.LengthM
	mass := volume * in.DensityKgM3

	return CylinderResult{
		VolumeM3:      precision.Round(volume, precision.Ratio),
		VolumeLiters:  precision.Round(volume*LitersPerCubicMeter, precision.Hundreds),
		VolumeGallons: precision.Round(volume*USGallonsPerCubicMeter, precision.Hundreds),
		MassKg:        precision.Round(mass, precision.Hundreds),
	}
}
