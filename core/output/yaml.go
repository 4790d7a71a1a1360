package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"tradecalc/core/calculator"
)

// YAMLFormatter writes results as a YAML document
type YAMLFormatter struct{}

type yamlDocument struct {
	Results []calculator.Result `yaml:"results"`
}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format { return FormatYAML }

// Render writes results under a top-level "results" key
func (f *YAMLFormatter) Render(w io.Writer, results []calculator.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Results: results}); err != nil {
		return err
	}
	return enc.Close()
}
