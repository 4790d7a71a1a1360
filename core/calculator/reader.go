package calculator

import (
	"fmt"

	"tradecalc/core/units"
)

// reader sanitizes raw fields against a descriptor and records the
// canonical values and any defaults it had to apply.
type reader struct {
	desc       Descriptor
	fields     Fields
	normalized map[string]float64
	notes      []string
}

func newReader(desc Descriptor, fields Fields) *reader {
	if fields == nil {
		fields = Fields{}
	}
	return &reader{
		desc:       desc,
		fields:     fields,
		normalized: make(map[string]float64),
	}
}

func (r *reader) spec(name string) FieldSpec {
	s, ok := r.desc.Field(name)
	if !ok {
		panic(fmt.Sprintf("calculator: %s has no field %q", r.desc.Name, name))
	}
	return s
}

// raw returns the field value, or the field default when absent
func (r *reader) raw(s FieldSpec) string {
	if v := r.fields.Get(s.Name); v != "" {
		return v
	}
	return s.Default
}

// number reads a decimal field; unparseable input is 0
func (r *reader) number(name string) float64 {
	s := r.spec(name)
	raw := r.raw(s)
	v := units.ParseOrDefault(raw, 0)
	if raw != "" && !units.IsNumeric(raw) {
		r.notef("%s: %q is not a number, using 0", name, raw)
	}
	r.normalized[name] = v
	return v
}

// nonZero reads a decimal field whose zero value falls back to def
func (r *reader) nonZero(name string, def float64) float64 {
	s := r.spec(name)
	raw := r.raw(s)
	v := units.ParseNonZero(raw, def)
	if raw != "" && units.ParseOrDefault(raw, 0) == 0 {
		r.notef("%s: %q replaced by default %g", name, raw, def)
	}
	r.normalized[name] = v
	return v
}

// integer reads a whole-number field whose zero value falls back to def
func (r *reader) integer(name string, def int64) int64 {
	s := r.spec(name)
	raw := r.raw(s)
	v := units.ParseIntOrDefault(raw, def)
	if raw != "" && units.ParseIntOrDefault(raw, 0) == 0 {
		r.notef("%s: %q replaced by default %d", name, raw, def)
	}
	r.normalized[name] = float64(v)
	return v
}

// quantity reads a number and its unit and returns it in canonical units
func (r *reader) quantity(name string) float64 {
	s := r.spec(name)
	unit := units.Unit(r.fields.Get(s.UnitField()))
	if unit == "" {
		unit = s.DefaultUnit
	}
	if !units.Known(s.UnitKind, unit) {
		r.notef("%s: unknown unit %q, value taken as %s", name, unit, units.Canonical(s.UnitKind))
	}

	raw := r.raw(s)
	if raw != "" && !units.IsNumeric(raw) {
		r.notef("%s: %q is not a number, using 0", name, raw)
	}
	v := units.Normalize(raw, unit, s.UnitKind)
	r.normalized[name] = v
	return v
}

// choice returns the raw tag of a choice field, defaulted when absent
func (r *reader) choice(name string) string {
	return r.raw(r.spec(name))
}

func (r *reader) notef(format string, args ...interface{}) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

func (r *reader) result(outputs ...Output) Result {
	return Result{
		Tool:       r.desc.Name,
		Outputs:    outputs,
		Normalized: r.normalized,
		Notes:      r.notes,
	}
}
