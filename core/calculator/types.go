// Package calculator - Tool registry over the formula evaluators.
// A tool accepts raw named fields exactly as a form or request supplies
// them, sanitizes them into canonical units and runs one evaluator.
// Calculating never fails; bad input degrades to documented defaults.
package calculator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tradecalc/core/units"
)

// Name identifies a tool
type Name string

const (
	Airflow   Name = "airflow"
	Load      Name = "load"
	Pipe      Name = "pipe"
	Sheathing Name = "sheathing"
	Shingle   Name = "shingle"
)

// FieldKind describes how a raw field is read
type FieldKind string

const (
	// FieldNumber is a decimal number
	FieldNumber FieldKind = "number"

	// FieldInteger is a whole number
	FieldInteger FieldKind = "integer"

	// FieldQuantity is a number with a companion "<name>_unit" field
	FieldQuantity FieldKind = "quantity"

	// FieldChoice is one of a fixed set of tags
	FieldChoice FieldKind = "choice"
)

// FieldSpec documents one input field of a tool
type FieldSpec struct {
	Name        string       `json:"name" yaml:"name"`
	Label       string       `json:"label" yaml:"label"`
	Kind        FieldKind    `json:"kind" yaml:"kind"`
	Default     string       `json:"default,omitempty" yaml:"default,omitempty"`
	UnitKind    units.Kind   `json:"unit_kind,omitempty" yaml:"unit_kind,omitempty"`
	DefaultUnit units.Unit   `json:"default_unit,omitempty" yaml:"default_unit,omitempty"`
	Units       []units.Unit `json:"units,omitempty" yaml:"units,omitempty"`
	Choices     []string     `json:"choices,omitempty" yaml:"choices,omitempty"`
	Help        string       `json:"help,omitempty" yaml:"help,omitempty"`
}

// UnitField is the name of the companion unit field of a quantity
func (s FieldSpec) UnitField() string {
	return s.Name + "_unit"
}

// Descriptor is the public description of a tool
type Descriptor struct {
	Name        Name        `json:"name" yaml:"name"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// Field returns the definition of a named field
func (d Descriptor) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Fields holds raw named inputs
type Fields map[string]string

// Get returns the trimmed raw value of a field, or "" when absent
func (f Fields) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Keys returns field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldsFrom converts decoded JSON, YAML or HCL values into raw fields.
// Numbers are written in their shortest form; nil values are dropped.
func FieldsFrom(values map[string]interface{}) Fields {
	out := make(Fields, len(values))
	for k, v := range values {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(units.Finite(x), 'g', -1, 64)
		case float32:
			out[k] = strconv.FormatFloat(units.Finite(float64(x)), 'g', -1, 32)
		case int:
			out[k] = strconv.Itoa(x)
		case int64:
			out[k] = strconv.FormatInt(x, 10)
		case bool:
			out[k] = strconv.FormatBool(x)
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}

// Output is one named, rounded result value
type Output struct {
	Name      string  `json:"name" yaml:"name"`
	Label     string  `json:"label" yaml:"label"`
	Value     float64 `json:"value" yaml:"value"`
	Unit      string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Precision int32   `json:"precision" yaml:"precision"`
}

// Result is the outcome of one calculation
type Result struct {
	Tool       Name               `json:"tool" yaml:"tool"`
	Label      string             `json:"label,omitempty" yaml:"label,omitempty"`
	Outputs    []Output           `json:"outputs" yaml:"outputs"`
	Normalized map[string]float64 `json:"normalized" yaml:"normalized"`
	Notes      []string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Value returns a named output value
func (r Result) Value(name string) (float64, bool) {
	for _, o := range r.Outputs {
		if o.Name == name {
			return o.Value, true
		}
	}
	return 0, false
}

// Values flattens outputs into a map
func (r Result) Values() map[string]float64 {
	out := make(map[string]float64, len(r.Outputs))
	for _, o := range r.Outputs {
		out[o.Name] = o.Value
	}
	return out
}
