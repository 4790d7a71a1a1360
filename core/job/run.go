package job

import (
	"go.uber.org/multierr"

	"tradecalc/core/calculator"
	"tradecalc/internal/errors"
)

// Outcome is the result of one request
type Outcome struct {
	Request Request
	Result  calculator.Result
	Err     error
}

// OK reports whether the request produced a result
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Summary counts outcomes
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Notes     int `json:"notes"`
}

// Run evaluates each request in order. A request naming an unknown tool
// gets an outcome carrying a not-found error; the rest still run.
func Run(reg *calculator.Registry, job *Job) []Outcome {
	outcomes := make([]Outcome, 0, len(job.Requests))
	for _, req := range job.Requests {
		outcomes = append(outcomes, RunOne(reg, req))
	}
	return outcomes
}

// RunOne evaluates a single request
func RunOne(reg *calculator.Registry, req Request) Outcome {
	res, ok := reg.Calculate(req.Tool, req.Fields)
	if !ok {
		err := errors.NotFound("tool", req.Tool)
		if req.Source != "" {
			err = err.WithContext("source", req.Source)
		}
		return Outcome{Request: req, Err: err}
	}
	res.Label = req.Label
	return Outcome{Request: req, Result: res}
}

// Results collects the results of successful outcomes
func Results(outcomes []Outcome) []calculator.Result {
	out := make([]calculator.Result, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			out = append(out, o.Result)
		}
	}
	return out
}

// Err combines the errors of failed outcomes, nil when all succeeded
func Err(outcomes []Outcome) error {
	var errs error
	for _, o := range outcomes {
		errs = multierr.Append(errs, o.Err)
	}
	return errs
}

// Summarize counts outcomes and the notes of their results
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.OK() {
			s.Succeeded++
			s.Notes += len(o.Result.Notes)
		} else {
			s.Failed++
		}
	}
	return s
}
