package output

import (
	"fmt"
	"io"
	"strings"

	"tradecalc/core/calculator"
)

// MarkdownFormatter writes a markdown report, one table per result
type MarkdownFormatter struct {
	opts Options
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, results []calculator.Result) error {
	var b strings.Builder
	if f.opts.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", f.opts.Title)
	}

	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(heading(r)))
		b.WriteString("| Output | Value | Unit |\n")
		b.WriteString("|---|---:|---|\n")
		for _, o := range r.Outputs {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeMarkdown(o.Label), display(o), escapeMarkdown(o.Unit))
		}
		b.WriteString("\n")

		if f.opts.ShowNotes && len(r.Notes) > 0 {
			for _, n := range r.Notes {
				fmt.Fprintf(&b, "> %s\n", escapeMarkdown(n))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
