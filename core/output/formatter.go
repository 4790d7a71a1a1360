// Package output renders calculation results.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"strings"

	"tradecalc/core/calculator"
	"tradecalc/core/precision"
	"tradecalc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable terminal table
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatPDF is a printable PDF report
	FormatPDF Format = "pdf"

	// FormatXLSX is a spreadsheet with one sheet per tool
	FormatXLSX Format = "xlsx"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the given results
	Render(w io.Writer, results []calculator.Result) error
}

// Options tune the renderers that support them
type Options struct {
	// Title heads document formats
	Title string

	// ShowNotes includes sanitizing notes
	ShowNotes bool
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{Title: "Trade Estimate", ShowNotes: true}
}

type constructor func(Options) Formatter

var constructors = map[Format]constructor{
	FormatText:     func(o Options) Formatter { return &TextFormatter{opts: o} },
	FormatJSON:     func(o Options) Formatter { return &JSONFormatter{Indent: "  "} },
	FormatYAML:     func(o Options) Formatter { return &YAMLFormatter{} },
	FormatMarkdown: func(o Options) Formatter { return &MarkdownFormatter{opts: o} },
	FormatPDF:      func(o Options) Formatter { return &PDFFormatter{opts: o} },
	FormatXLSX:     func(o Options) Formatter { return &XLSXFormatter{opts: o} },
}

var aliases = map[string]Format{
	"txt":   FormatText,
	"table": FormatText,
	"cli":   FormatText,
	"yml":   FormatYAML,
	"md":    FormatMarkdown,
	"excel": FormatXLSX,
}

// ParseFormat resolves a format name or alias, case-insensitively
func ParseFormat(s string) (Format, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := aliases[s]; ok {
		return f, true
	}
	f := Format(s)
	_, ok := constructors[f]
	return f, ok
}

// Get returns a formatter with default options
func Get(format string) (Formatter, error) {
	return New(format, DefaultOptions())
}

// New returns a formatter for the named format
func New(format string, opts Options) (Formatter, error) {
	f, ok := ParseFormat(format)
	if !ok {
		return nil, errors.NotSupported("output format "+format).
			WithContext("supported", Formats())
	}
	return constructors[f](opts), nil
}

// Formats lists the supported formats
func Formats() []Format {
	out := make([]Format, 0, len(constructors))
	for f := range constructors {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Binary reports whether a format is unsuitable for a terminal
func (f Format) Binary() bool {
	return f == FormatPDF || f == FormatXLSX
}

// ContentType is the MIME type of a format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file extension of a format, without the dot
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// display is an output value at its own precision
func display(o calculator.Output) string {
	return precision.Fixed(o.Value, o.Precision)
}

// heading names a result by its label, falling back to the tool name
func heading(r calculator.Result) string {
	if r.Label != "" {
		return string(r.Tool) + ": " + r.Label
	}
	return string(r.Tool)
}
