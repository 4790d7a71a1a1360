package pitch

import (
	"math"
	"strconv"
	"strings"
)

// PresetEntry is a named pitch with a tabulated sheathing multiplier
type PresetEntry struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// DefaultPreset is used by the sheathing tool when no pitch is given
const DefaultPreset = "6:12"

// Tabulated multipliers from trade tables. They are rounded and do not
// exactly match Multiplier for the same ratio.
var presets = []PresetEntry{
	{Label: "2:12", Multiplier: 1.02},
	{Label: "4:12", Multiplier: 1.06},
	{Label: "6:12", Multiplier: 1.12},
	{Label: "8:12", Multiplier: 1.20},
	{Label: "10:12", Multiplier: 1.30},
}

// Presets returns a copy of the preset table, lowest pitch first
func Presets() []PresetEntry {
	out := make([]PresetEntry, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up a tabulated multiplier by label ("6:12", "6/12", " 6:12 ")
func Preset(label string) (float64, bool) {
	l := strings.ReplaceAll(strings.TrimSpace(label), "/", ":")
	for _, p := range presets {
		if p.Label == l {
			return p.Multiplier, true
		}
	}
	return 0, false
}

// ParseRatio reads a "rise:run" or "rise/run" label such as "7:12" and
// returns the rise per 12 units of run. Bare numbers are not ratios.
func ParseRatio(label string) (float64, bool) {
	l := strings.ReplaceAll(strings.TrimSpace(label), "/", ":")
	rise, run, found := strings.Cut(l, ":")
	if !found {
		return 0, false
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(rise), 64)
	if err != nil || r < 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(run), 64)
	if err != nil || !(n > 0) || math.IsInf(n, 0) {
		return 0, false
	}
	return r * 12 / n, true
}
