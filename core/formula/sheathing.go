package formula

import (
	"strings"

	"tradecalc/core/precision"
)

// PanelAreaFt2 is the coverage of one 4x8 sheathing panel
const PanelAreaFt2 = 32

// Thickness is the nominal sheathing panel thickness. It does not change the
// panel count; it is carried through so estimates record what was priced.
type Thickness string

const (
	Thickness7_16 Thickness = "7/16"
	Thickness1_2  Thickness = "1/2"
	Thickness5_8  Thickness = "5/8"
)

// Thicknesses lists the stocked thicknesses
func Thicknesses() []Thickness {
	return []Thickness{Thickness7_16, Thickness1_2, Thickness5_8}
}

// LookupThickness maps a tag such as 5/8 or 5/8" to a stocked thickness
func LookupThickness(s string) (Thickness, bool) {
	t := Thickness(strings.Trim(strings.TrimSpace(s), `"`))
	for _, known := range Thicknesses() {
		if t == known {
			return t, true
		}
	}
	return Thickness7_16, false
}

// ParseThickness is LookupThickness with unknown tags read as 7/16
func ParseThickness(s string) Thickness {
	t, _ := LookupThickness(s)
	return t
}

// SheathingInput is a roof plan in feet with a slope multiplier
type SheathingInput struct {
	LengthFt        float64   `json:"length_ft"`
	WidthFt         float64   `json:"width_ft"`
	PitchMultiplier float64   `json:"pitch_multiplier"`
	Thickness       Thickness `json:"thickness"`
}

// SheathingResult is the deck area and panels to order
type SheathingResult struct {
	BaseAreaFt2     float64   `json:"base_area_ft2"`
	AdjustedAreaFt2 float64   `json:"adjusted_area_ft2"`
	Panels          int64     `json:"panels"`
	Thickness       Thickness `json:"thickness"`
}

// Sheathing computes the sloped deck area and the whole number of panels
// that cover it. Panels are always rounded up.
func Sheathing(in SheathingInput) SheathingResult {
	base := in.LengthFt * in.WidthFt
	adjusted := base * in.PitchMultiplier

	thickness := in.Thickness
	if thickness == "" {
		thickness = Thickness7_16
	}

	return SheathingResult{
		BaseAreaFt2:     precision.Round(base, precision.Hundreds),
		AdjustedAreaFt2: precision.Round(adjusted, precision.Hundreds),
		Panels:          precision.Ceil(adjusted / PanelAreaFt2),
		Thickness:       thickness,
	}
}
