package calculator

import (
	"strconv"
	"strings"

	"tradecalc/core/formula"
	"tradecalc/core/pitch"
	"tradecalc/core/precision"
	"tradecalc/core/units"
)

// Tool turns raw fields into a result
type Tool interface {
	// Name returns the registry key
	Name() Name

	// Describe returns the tool's fields for help text and request validation
	Describe() Descriptor

	// Calculate sanitizes fields and evaluates the estimator
	Calculate(fields Fields) Result
}

func quantityField(name, label string, kind units.Kind, def units.Unit, help string) FieldSpec {
	return FieldSpec{
		Name:        name,
		Label:       label,
		Kind:        FieldQuantity,
		UnitKind:    kind,
		DefaultUnit: def,
		Units:       units.Supported(kind),
		Help:        help,
	}
}

func numberField(name, label, def, help string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Kind: FieldNumber, Default: def, Help: help}
}

// =============================================================================
// AIRFLOW
// =============================================================================

type airflowTool struct{}

func (airflowTool) Name() Name { return Airflow }

func (airflowTool) Describe() Descriptor {
	return Descriptor{
		Name:        Airflow,
		Title:       "CFM Calculator",
		Description: "Required airflow for a room from its volume and air changes per hour.",
		Fields: []FieldSpec{
			quantityField("floor_area", "Floor area", units.Area, units.SquareFeet, "Room floor area"),
			quantityField("ceiling_height", "Ceiling height", units.Length, units.Feet, "Average ceiling height"),
			numberField("ach", "Air changes per hour", "", "Design air changes per hour"),
		},
	}
}

func (t airflowTool) Calculate(fields Fields) Result {
	r := newReader(t.Describe(), fields)
	res := formula.Airflow(formula.AirflowInput{
		FloorAreaFt2:    r.quantity("floor_area"),
		CeilingHeightFt: r.quantity("ceiling_height"),
		ACH:             r.number("ach"),
	})

	return r.result(
		Output{Name: "volume", Label: "Room volume", Value: res.VolumeFt3, Unit: "ft³", Precision: precision.Hundreds},
		Output{Name: "cfm", Label: "Airflow", Value: res.CFM, Unit: "CFM", Precision: precision.Hundreds},
	)
}

// =============================================================================
// THERMAL LOAD
// =============================================================================

type loadTool struct{}

func (loadTool) Name() Name { return Load }

func (loadTool) Describe() Descriptor {
	choices := make([]string, 0, 4)
	for _, i := range formula.Insulations() {
		choices = append(choices, string(i))
	}

	return Descriptor{
		Name:        Load,
		Title:       "HVAC Load Calculator",
		Description: "Simplified Manual J heating and cooling load in BTU and tons.",
		Fields: []FieldSpec{
			quantityField("square_footage", "House surface", units.Area, units.SquareFeet, "Conditioned floor area"),
			quantityField("ceiling_height", "Ceiling height", units.Length, units.Feet, "Average ceiling height"),
			numberField("occupants", "Occupants", "", "People normally in the house"),
			numberField("windows", "Windows", "", "Number of windows"),
			numberField("doors", "Exterior doors", "", "Number of exterior doors"),
			{
				Name:    "insulation",
				Label:   "Insulation",
				Kind:    FieldChoice,
				Default: string(formula.InsulationAverage),
				Choices: choices,
				Help:    "Envelope insulation quality",
			},
		},
	}
}

func (t loadTool) Calculate(fields Fields) Result {
	r := newReader(t.Describe(), fields)

	tag := r.choice("insulation")
	grade, ok := formula.LookupInsulation(tag)
	if !ok {
		r.notef("insulation: %q is not a known grade, using %s", tag, grade)
	}

	res := formula.ThermalLoad(formula.ThermalLoadInput{
		SquareFeet:      r.quantity("square_footage"),
		CeilingHeightFt: r.quantity("ceiling_height"),
		Occupants:       r.number("occupants"),
		Windows:         r.number("windows"),
		Doors:           r.number("doors"),
		Insulation:      grade,
	})
	r.normalized["insulation_factor"] = res.InsulationFactor

	return r.result(
		Output{Name: "btu", Label: "Total load", Value: float64(res.BTU), Unit: "BTU/h", Precision: precision.Whole},
		Output{Name: "tons", Label: "Tonnage", Value: res.Tons, Unit: "tons", Precision: precision.Hundreds},
	)
}

// =============================================================================
// PIPE VOLUME
// =============================================================================

type pipeTool struct{}

func (pipeTool) Name() Name { return Pipe }

func (pipeTool) Describe() Descriptor {
	diameter := quantityField("diameter", "Inner diameter", units.LengthSI, units.Inches, "Inside diameter of the pipe")
	length := quantityField("length", "Pipe length", units.LengthSI, units.Feet, "Length of the run")
	density := quantityField("density", "Fluid density", units.Density, units.KilogramsPerCubicMeter, "Density of the fluid, water is 997 kg/m³")
	density.Default = "997"

	return Descriptor{
		Name:        Pipe,
		Title:       "Pipe Volume Calculator",
		Description: "Fluid volume held by a pipe run and the mass of that fluid.",
		Fields:      []FieldSpec{diameter, length, density},
	}
}

func (t pipeTool) Calculate(fields Fields) Result {
	r := newReader(t.Describe(), fields)
	res := formula.Cylinder(formula.CylinderInput{
		DiameterM:   r.quantity("diameter"),
		LengthM:     r.quantity("length"),
		DensityKgM3: r.quantity("density"),
	})

	return r.result(
		Output{Name: "volume", Label: "Volume", Value: res.VolumeM3, Unit: "m³", Precision: precision.Ratio},
		Output{Name: "volume_liters", Label: "Volume", Value: res.VolumeLiters, Unit: "L", Precision: precision.Hundreds},
		Output{Name: "volume_gallons", Label: "Volume", Value: res.VolumeGallons, Unit: "US gal", Precision: precision.Hundreds},
		Output{Name: "mass", Label: "Fluid mass", Value: res.MassKg, Unit: "kg", Precision: precision.Hundreds},
	)
}

// =============================================================================
// ROOF SHEATHING
// =============================================================================

type sheathingTool struct{}

func (sheathingTool) Name() Name { return Sheathing }

func (sheathingTool) Describe() Descriptor {
	presets := pitch.Presets()
	pitches := make([]string, 0, len(presets))
	for _, p := range presets {
		pitches = append(pitches, p.Label)
	}
	thicknesses := make([]string, 0, 3)
	for _, th := range formula.Thicknesses() {
		thicknesses = append(thicknesses, string(th))
	}

	return Descriptor{
		Name:        Sheathing,
		Title:       "Roof Sheathing Calculator",
		Description: "Sloped deck area and the number of 4x8 panels to cover it.",
		Fields: []FieldSpec{
			quantityField("length", "Roof length", units.Length, units.Feet, "Horizontal length of the roof's base"),
			quantityField("width", "Roof width", units.Length, units.Feet, "Horizontal width of the roof's base"),
			{
				Name:    "pitch",
				Label:   "Roof pitch",
				Kind:    FieldChoice,
				Default: pitch.DefaultPreset,
				Choices: pitches,
				Help:    "Preset pitch, another rise:run ratio such as 7:12, or a raw area multiplier such as 1.15",
			},
			{
				Name:    "thickness",
				Label:   "Panel thickness",
				Kind:    FieldChoice,
				Default: string(formula.Thickness7_16),
				Choices: thicknesses,
				Help:    "Nominal panel thickness in inches",
			},
		},
	}
}

func (t sheathingTool) Calculate(fields Fields) Result {
	r := newReader(t.Describe(), fields)

	tag := r.choice("pitch")
	multiplier, ok := pitch.Preset(tag)
	if !ok {
		if rise, isRatio := pitch.ParseRatio(tag); isRatio {
			multiplier = pitch.Multiplier(pitch.Spec{Kind: pitch.Ratio, Value: rise})
			r.notef("pitch: %q is not a tabulated preset, using computed multiplier %s", tag, precision.Fixed(multiplier, precision.Ratio))
		} else if units.IsNumeric(tag) && !strings.ContainsAny(tag, ":/") {
			multiplier = units.ParseNonZero(tag, 1)
		} else {
			multiplier = 1
			r.notef("pitch: %q is not a preset or multiplier, using 1", tag)
		}
	}
	r.normalized["pitch_multiplier"] = multiplier

	thicknessTag := r.choice("thickness")
	thickness, ok := formula.LookupThickness(thicknessTag)
	if !ok {
		r.notef("thickness: %q is not stocked, using %s", thicknessTag, thickness)
	}

	res := formula.Sheathing(formula.SheathingInput{
		LengthFt:        r.quantity("length"),
		WidthFt:         r.quantity("width"),
		PitchMultiplier: multiplier,
		Thickness:       thickness,
	})

	return r.result(
		Output{Name: "base_area", Label: "Base area", Value: res.BaseAreaFt2, Unit: "ft²", Precision: precision.Hundreds},
		Output{Name: "adjusted_area", Label: "Adjusted area", Value: res.AdjustedAreaFt2, Unit: "ft²", Precision: precision.Hundreds},
		Output{Name: "panels", Label: "Panels (4x8, " + string(res.Thickness) + "\")", Value: float64(res.Panels), Unit: "panels", Precision: precision.Whole},
	)
}

// =============================================================================
// SHINGLES
// =============================================================================

type shingleTool struct{}

func (shingleTool) Name() Name { return Shingle }

func (shingleTool) Describe() Descriptor {
	kinds := make([]string, 0, 3)
	for _, k := range pitch.Kinds() {
		kinds = append(kinds, string(k))
	}

	return Descriptor{
		Name:        Shingle,
		Title:       "Roof Shingle Calculator",
		Description: "Sloped roof area, squares, bundles and shingles to order.",
		Fields: []FieldSpec{
			quantityField("length", "Roof length", units.Length, units.Feet, "Horizontal length of the roof's base"),
			quantityField("width", "Roof width", units.Length, units.Feet, "Horizontal width of the roof's base"),
			{
				Name:    "pitch_type",
				Label:   "Pitch type",
				Kind:    FieldChoice,
				Default: string(pitch.Ratio),
				Choices: kinds,
				Help:    "x12 rise per 12 of run, angle in degrees, or percent grade",
			},
			numberField("pitch_value", "Pitch", "", "6 for a 6:12 roof, 26.57 for degrees, 50 for percent"),
			numberField("bundle_coverage", "Bundle coverage (ft²)", strconv.FormatFloat(formula.DefaultBundleCoverageFt2, 'g', -1, 64), "Area covered by one bundle"),
			{
				Name:    "shingles_per_bundle",
				Label:   "Shingles per bundle",
				Kind:    FieldInteger,
				Default: strconv.Itoa(formula.DefaultShinglesPerBundle),
				Help:    "Shingles packed in one bundle",
			},
		},
	}
}

func (t shingleTool) Calculate(fields Fields) Result {
	r := newReader(t.Describe(), fields)

	kindTag := r.choice("pitch_type")
	if _, ok := pitch.ParseKind(kindTag); !ok {
		r.notef("pitch_type: %q is not a pitch type, using %s", kindTag, pitch.Ratio)
	}
	spec := pitch.Resolve(kindTag, r.fields.Get("pitch_value"), pitch.Ratio)
	r.number("pitch_value")
	slope := pitch.Multiplier(spec)
	r.normalized["slope_multiplier"] = slope

	res := formula.Shingle(formula.ShingleInput{
		LengthFt:          r.quantity("length"),
		WidthFt:           r.quantity("width"),
		SlopeMultiplier:   slope,
		BundleCoverageFt2: r.nonZero("bundle_coverage", formula.DefaultBundleCoverageFt2),
		ShinglesPerBundle: r.integer("shingles_per_bundle", formula.DefaultShinglesPerBundle),
	})

	return r.result(
		Output{Name: "slope_multiplier", Label: "Slope multiplier", Value: res.SlopeMultiplier, Precision: precision.Ratio},
		Output{Name: "roof_area", Label: "Roof area", Value: res.RoofAreaFt2, Unit: "ft²", Precision: precision.Hundreds},
		Output{Name: "squares", Label: "Squares", Value: res.Squares, Unit: "squares", Precision: precision.Hundreds},
		Output{Name: "bundles", Label: "Bundles", Value: float64(res.Bundles), Unit: "bundles", Precision: precision.Whole},
		Output{Name: "shingles", Label: "Shingles", Value: float64(res.Shingles), Unit: "shingles", Precision: precision.Whole},
	)
}
