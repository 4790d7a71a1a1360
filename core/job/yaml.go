package job

import (
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"tradecalc/core/calculator"
)

type yamlJob struct {
	Title     string      `yaml:"title"`
	Estimates []yaml.Node `yaml:"estimates"`
}

type yamlEstimate struct {
	Tool   string                 `yaml:"tool"`
	Label  string                 `yaml:"label"`
	Fields map[string]interface{} `yaml:"fields"`
}

// decodeYAML reads
//
//	title: Smith residence
//	estimates:
//	  - tool: sheathing
//	    label: garage
//	    fields: {length: 20, width: 30, pitch: "6:12"}
func decodeYAML(data []byte, filename string) (*Job, error) {
	var raw yamlJob
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	job := &Job{Title: raw.Title}
	var errs error
	for i := range raw.Estimates {
		node := &raw.Estimates[i]
		source := fmt.Sprintf("%s:%d", filename, node.Line)

		var est yamlEstimate
		if err := node.Decode(&est); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: estimate %d: %w", source, i+1, err))
			continue
		}
		if est.Tool == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: estimate %d: tool is required", source, i+1))
			continue
		}

		job.Requests = append(job.Requests, Request{
			Tool:   est.Tool,
			Label:  est.Label,
			Fields: calculator.FieldsFrom(est.Fields),
			Source: source,
		})
	}

	if errs != nil {
		return nil, errs
	}
	return job, nil
}
