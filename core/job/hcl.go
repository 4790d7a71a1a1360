package job

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/multierr"

	"tradecalc/core/calculator"
)

var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "estimate", LabelNames: []string{"tool", "label"}},
	},
}

// decodeHCL reads
//
//	title = "Smith residence"
//
//	estimate "sheathing" "garage" {
//	  length = 20
//	  width  = 30
//	  pitch  = "6:12"
//	}
//
// Attribute values must be literal strings, numbers or bools. Every problem
// in the file is reported, not just the first.
func decodeHCL(src []byte, filename string, isJSON bool) (*Job, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if isJSON {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diagErrors(diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, diagErrors(diags)
	}

	job := &Job{}
	var errs error

	if attr, ok := content.Attributes["title"]; ok {
		v, err := literal(attr)
		errs = multierr.Append(errs, err)
		if s, ok := v.(string); ok {
			job.Title = s
		}
	}

	for _, block := range content.Blocks {
		req, err := decodeEstimate(block)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		job.Requests = append(job.Requests, req)
	}

	if errs != nil {
		return nil, errs
	}
	return job, nil
}

func decodeEstimate(block *hcl.Block) (Request, error) {
	req := Request{
		Tool:   block.Labels[0],
		Label:  block.Labels[1],
		Source: block.DefRange.String(),
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return req, diagErrors(diags)
	}

	// Attributes come back as a map; walk them in source order so errors
	// read top to bottom.
	list := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Range.Start.Byte < list[j].Range.Start.Byte
	})

	values := make(map[string]interface{}, len(list))
	var errs error
	for _, a := range list {
		v, err := literal(a)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		values[a.Name] = v
	}
	req.Fields = calculator.FieldsFrom(values)
	return req, errs
}

// literal evaluates an attribute without variables or functions
func literal(attr *hcl.Attribute) (interface{}, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diagErrors(diags)
	}
	v, err := ctyToGo(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", attr.Range, attr.Name, err)
	}
	return v, nil
}

// ctyToGo converts the primitive cty values a job may hold
func ctyToGo(val cty.Value) (interface{}, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case cty.Bool:
		return val.True(), nil
	}
	return nil, fmt.Errorf("must be a string, number or bool, got %s", val.Type().FriendlyName())
}

func diagErrors(diags hcl.Diagnostics) error {
	var errs error
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			errs = multierr.Append(errs, d)
		}
	}
	return errs
}
