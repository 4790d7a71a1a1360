// Package pitch resolves roof slope representations into an area multiplier.
//
// Ratio and percent forms use the Pythagorean hypotenuse over a normalized
// run; the angle form uses the secant of the angle. The two are kept as
// separate formulas and are only approximately equal for the same roof.
package pitch

import (
	"math"
	"strings"

	"tradecalc/core/units"
)

// Kind identifies how a pitch value is expressed
type Kind string

const (
	// Ratio is rise per 12 units of run (6 means 6:12)
	Ratio Kind = "x12"

	// Angle is the slope angle from horizontal in degrees
	Angle Kind = "angle"

	// Percent is grade, rise over run times 100
	Percent Kind = "percent"
)

// Spec is one slope expressed in one of the supported kinds
type Spec struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
}

// Kinds lists the accepted pitch kinds
func Kinds() []Kind {
	return []Kind{Ratio, Angle, Percent}
}

// ParseKind maps a caller tag to a Kind
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x12", "x:12", "ratio", "rise":
		return Ratio, true
	case "angle", "deg", "degree", "degrees":
		return Angle, true
	case "percent", "pct", "%", "grade":
		return Percent, true
	}
	return "", false
}

// Resolve builds a Spec from raw form values. An unrecognized kind falls back
// to def; an unparseable value is 0 (a flat roof).
func Resolve(kind, raw string, def Kind) Spec {
	k, ok := ParseKind(kind)
	if !ok {
		k = def
	}
	return Spec{Kind: k, Value: units.ParseOrDefault(raw, 0)}
}

// Multiplier returns the roof area multiplier for spec. Angles at or past 90°
// are not clamped and produce very large or negative multipliers. A Spec with
// an unknown kind is treated as flat.
func Multiplier(spec Spec) float64 {
	switch spec.Kind {
	case Ratio:
		return math.Sqrt(1 + math.Pow(spec.Value/12, 2))
	case Angle:
		return 1 / math.Cos(spec.Value*math.Pi/180)
	case Percent:
		return math.Sqrt(1 + math.Pow(spec.Value/100, 2))
	}
	return 1
}
