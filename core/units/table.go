// Package units - Unit conversion table and quantity normalization.
// Every supported unit maps to a positive scale factor relative to the
// canonical unit of its kind. Lookups never fail: unknown tags are identity.
package units

import "strings"

// Kind identifies a family of interchangeable units
type Kind string

const (
	// Length normalizes to feet
	Length Kind = "length"

	// LengthSI normalizes to meters
	LengthSI Kind = "length_si"

	// Area normalizes to square feet
	Area Kind = "area"

	// Density normalizes to kg/m³
	Density Kind = "density"
)

// Unit is a unit tag as supplied by a caller, e.g. "ft" or "kg/m³"
type Unit string

// Length units
const (
	Feet        Unit = "ft"
	Inches      Unit = "in"
	Meters      Unit = "m"
	Centimeters Unit = "cm"
	Millimeters Unit = "mm"
)

// Area units
const (
	SquareFeet        Unit = "ft2"
	SquareInches      Unit = "in2"
	SquareMeters      Unit = "m2"
	SquareCentimeters Unit = "cm2"
	SquareMillimeters Unit = "mm2"
)

// Density units
const (
	KilogramsPerCubicMeter Unit = "kg/m3"
	PoundsPerCubicFoot     Unit = "lb/ft3"
)

// FeetPerMeter is the length factor shared by the imperial tables.
const FeetPerMeter = 3.28084

var lengthFeet = map[Unit]float64{
	Feet:        1,
	Inches:      1.0 / 12,
	Meters:      FeetPerMeter,
	Centimeters: 0.01 * FeetPerMeter,
	Millimeters: 0.001 * FeetPerMeter,
}

var lengthMeters = map[Unit]float64{
	Meters:      1,
	Centimeters: 0.01,
	Millimeters: 0.001,
	Feet:        0.3048,
	Inches:      0.0254,
}

var areaLinear = map[Unit]Unit{
	SquareFeet:        Feet,
	SquareInches:      Inches,
	SquareMeters:      Meters,
	SquareCentimeters: Centimeters,
	SquareMillimeters: Millimeters,
}

var density = map[Unit]float64{
	KilogramsPerCubicMeter: 1,
	PoundsPerCubicFoot:     16.018463,
}

// Factor returns the multiplier converting a value in unit to the canonical
// unit of kind. Unknown kinds and unknown tags resolve to 1.
func Factor(kind Kind, unit Unit) float64 {
	u := Canonicalize(unit)

	var f float64
	var ok bool
	switch kind {
	case Length:
		f, ok = lengthFeet[u]
	case LengthSI:
		f, ok = lengthMeters[u]
	case Area:
		var linear Unit
		if linear, ok = areaLinear[u]; ok {
			lf := lengthFeet[linear]
			f = lf * lf
		}
	case Density:
		f, ok = density[u]
	}

	if !ok {
		return 1
	}
	return f
}

// Known reports whether unit has an entry in the table for kind
func Known(kind Kind, unit Unit) bool {
	u := Canonicalize(unit)
	switch kind {
	case Length:
		_, ok := lengthFeet[u]
		return ok
	case LengthSI:
		_, ok := lengthMeters[u]
		return ok
	case Area:
		_, ok := areaLinear[u]
		return ok
	case Density:
		_, ok := density[u]
		return ok
	}
	return false
}

// Supported lists the unit tags accepted for kind, canonical unit first
func Supported(kind Kind) []Unit {
	switch kind {
	case Length:
		return []Unit{Feet, Inches, Meters, Centimeters, Millimeters}
	case LengthSI:
		return []Unit{Meters, Centimeters, Millimeters, Feet, Inches}
	case Area:
		return []Unit{SquareFeet, SquareInches, SquareMeters, SquareCentimeters, SquareMillimeters}
	case Density:
		return []Unit{KilogramsPerCubicMeter, PoundsPerCubicFoot}
	}
	return nil
}

// Canonical returns the unit every value of kind is normalized to
func Canonical(kind Kind) Unit {
	if list := Supported(kind); len(list) > 0 {
		return list[0]
	}
	return ""
}

var superscripts = strings.NewReplacer("²", "2", "³", "3", "^2", "2", "^3", "3")

// Canonicalize folds case, whitespace and superscript variants so that
// "kg/m³", "KG/M3" and " kg/m^3 " name the same unit.
func Canonicalize(unit Unit) Unit {
	s := strings.ToLower(strings.TrimSpace(string(unit)))
	s = strings.ReplaceAll(s, " ", "")
	u := Unit(superscripts.Replace(s))
	if alias, ok := aliases[u]; ok {
		return alias
	}
	return u
}

var aliases = map[Unit]Unit{
	"feet":   Feet,
	"foot":   Feet,
	"inch":   Inches,
	"inches": Inches,
	"sqft":   SquareFeet,
	"sqm":    SquareMeters,
}
