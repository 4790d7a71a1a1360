// Package job loads batch job files and runs their estimates in order.
// A job lists named estimates, each a tool plus raw fields, in one of three
// encodings: HCL blocks, a YAML list or a spreadsheet with a sheet per tool.
package job

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tradecalc/core/calculator"
	"tradecalc/internal/errors"
)

// Encoding identifies a job file encoding
type Encoding string

const (
	EncodingHCL     Encoding = "hcl"
	EncodingHCLJSON Encoding = "hcl-json"
	EncodingYAML    Encoding = "yaml"
	EncodingXLSX    Encoding = "xlsx"
)

// Request is one estimate of a job
type Request struct {
	// Tool names the calculator tool
	Tool string `json:"tool" yaml:"tool"`

	// Label distinguishes estimates of the same tool
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Fields are the raw inputs
	Fields calculator.Fields `json:"fields" yaml:"fields"`

	// Source locates the request in its job file
	Source string `json:"source,omitempty" yaml:"-"`
}

// Job is an ordered list of requests
type Job struct {
	// Title names the job in reports
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Requests in file order
	Requests []Request `json:"estimates" yaml:"estimates"`
}

// EncodingFor picks an encoding from a file name
func EncodingFor(path string) (Encoding, bool) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".hcl.json"), strings.HasSuffix(name, ".json"):
		return EncodingHCLJSON, true
	case strings.HasSuffix(name, ".hcl"):
		return EncodingHCL, true
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return EncodingYAML, true
	case strings.HasSuffix(name, ".xlsx"):
		return EncodingXLSX, true
	}
	return "", false
}

// Load reads and decodes a job file, choosing the decoder by extension
func Load(path string) (*Job, error) {
	enc, ok := EncodingFor(path)
	if !ok {
		return nil, errors.NotSupported("job file extension " + filepath.Ext(path)).
			WithContext("file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("job file", path)
		}
		return nil, errors.Parsing("read "+path, err)
	}
	return Decode(enc, data, path)
}

// Decode decodes job data; name is used in diagnostics
func Decode(enc Encoding, data []byte, name string) (*Job, error) {
	var (
		job *Job
		err error
	)
	switch enc {
	case EncodingHCL:
		job, err = decodeHCL(data, name, false)
	case EncodingHCLJSON:
		job, err = decodeHCL(data, name, true)
	case EncodingYAML:
		job, err = decodeYAML(data, name)
	case EncodingXLSX:
		job, err = decodeXLSX(bytes.NewReader(data), name)
	default:
		return nil, errors.NotSupported(fmt.Sprintf("job encoding %q", enc))
	}
	if err != nil {
		return nil, errors.Parsing("decode "+name, err).WithContext("file", name)
	}
	return job, nil
}
