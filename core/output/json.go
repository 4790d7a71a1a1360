package output

import (
	"encoding/json"
	"io"
	"math"

	"tradecalc/core/calculator"
)

// JSONFormatter writes results as a JSON document
type JSONFormatter struct {
	Indent string
}

// OutputView is the JSON wire shape of an output
type OutputView struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Value   *json.Number `json:"value"`
	Display string       `json:"display"`
	Unit    string       `json:"unit,omitempty"`
}

// ResultView is the JSON wire shape of a result
type ResultView struct {
	Tool    calculator.Name `json:"tool"`
	Label   string          `json:"label,omitempty"`
	Outputs []OutputView    `json:"outputs"`
	Notes   []string        `json:"notes,omitempty"`
}

type jsonDocument struct {
	Count   int          `json:"count"`
	Results []ResultView `json:"results"`
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes {"count": n, "results": [...]}.
// Values are emitted at their own precision; non-finite values become null
// and keep their spelling in "display".
func (f *JSONFormatter) Render(w io.Writer, results []calculator.Result) error {
	doc := jsonDocument{Count: len(results), Results: make([]ResultView, 0, len(results))}
	for _, r := range results {
		doc.Results = append(doc.Results, View(r))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(doc)
}

// View converts a result into its JSON wire shape
func View(r calculator.Result) ResultView {
	out := ResultView{
		Tool:    r.Tool,
		Label:   r.Label,
		Outputs: make([]OutputView, 0, len(r.Outputs)),
		Notes:   r.Notes,
	}
	for _, o := range r.Outputs {
		jo := OutputView{
			Name:    o.Name,
			Label:   o.Label,
			Display: display(o),
			Unit:    o.Unit,
		}
		if !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0) {
			n := json.Number(jo.Display)
			jo.Value = &n
		}
		out.Outputs = append(out.Outputs, jo)
	}
	return out
}
