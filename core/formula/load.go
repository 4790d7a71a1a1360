package formula

import (
	"strings"

	"tradecalc/core/precision"
)

// Insulation grades the building envelope
type Insulation string

const (
	InsulationPoor      Insulation = "poor"
	InsulationAverage   Insulation = "average"
	InsulationGood      Insulation = "good"
	InsulationExcellent Insulation = "excellent"
)

// Per-item allowances in BTU/h
const (
	BTUPerOccupant = 100
	BTUPerWindow   = 1000
	BTUPerDoor     = 1000

	// BTUPerTon is one ton of refrigeration
	BTUPerTon = 12000
)

// Insulations lists the recognized grades, worst first
func Insulations() []Insulation {
	return []Insulation{InsulationPoor, InsulationAverage, InsulationGood, InsulationExcellent}
}

// LookupInsulation maps a caller tag to a grade, case-insensitively
func LookupInsulation(s string) (Insulation, bool) {
	switch i := Insulation(strings.ToLower(strings.TrimSpace(s))); i {
	case InsulationPoor, InsulationAverage, InsulationGood, InsulationExcellent:
		return i, true
	}
	return InsulationAverage, false
}

// ParseInsulation is LookupInsulation with unknown tags read as average
func ParseInsulation(s string) Insulation {
	i, _ := LookupInsulation(s)
	return i
}

// Factor returns the load multiplier for the grade
func (i Insulation) Factor() float64 {
	switch i {
	case InsulationPoor:
		return 1.2
	case InsulationGood:
		return 0.85
	case InsulationExcellent:
		return 0.75
	default:
		return 1.0
	}
}

// ThermalLoadInput describes a house for a simplified Manual J estimate
type ThermalLoadInput struct {
	SquareFeet      float64    `json:"square_feet"`
	CeilingHeightFt float64    `json:"ceiling_height_ft"`
	Occupants       float64    `json:"occupants"`
	Windows         float64    `json:"windows"`
	Doors           float64    `json:"doors"`
	Insulation      Insulation `json:"insulation"`
}

// ThermalLoadResult is the heating/cooling requirement
type ThermalLoadResult struct {
	BTU              int64   `json:"btu"`
	Tons             float64 `json:"tons"`
	InsulationFactor float64 `json:"insulation_factor"`
}

// ThermalLoad sums the volume, occupant, window and door allowances and
// scales them by the insulation factor. Tonnage is derived from the rounded
// BTU figure so the two outputs agree with each other.
func ThermalLoad(in ThermalLoadInput) ThermalLoadResult {
	factor := in.Insulation.Factor()
	raw := (in.SquareFeet*in.CeilingHeightFt +
		in.Occupants*BTUPerOccupant +
		in.Windows*BTUPerWindow +
		in.Doors*BTUPerDoor) * factor

	btu := precision.RoundCount(raw)
	return ThermalLoadResult{
		BTU:              btu,
		Tons:             precision.Round(float64(btu)/BTUPerTon, precision.Hundreds),
		InsulationFactor: factor,
	}
}
