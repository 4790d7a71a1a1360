package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tradecalc/core/calculator"
)

// TextFormatter renders aligned tables for a terminal.
// Colors are used only when the writer is a color-capable terminal.
type TextFormatter struct {
	opts Options
}

// Format returns FormatText
func (f *TextFormatter) Format() Format { return FormatText }

// Render writes one block per result
func (f *TextFormatter) Render(w io.Writer, results []calculator.Result) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle := r.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle := r.NewStyle().Bold(true)
	noteStyle := r.NewStyle().Italic(true).Foreground(lipgloss.Color("214"))

	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(heading(res)))
		b.WriteString("\n")

		labelWidth, valueWidth := 0, 0
		for _, o := range res.Outputs {
			labelWidth = max(labelWidth, lipgloss.Width(o.Label))
			valueWidth = max(valueWidth, lipgloss.Width(display(o)))
		}

		for _, o := range res.Outputs {
			label := labelStyle.Width(labelWidth).Render(o.Label)
			value := valueStyle.Width(valueWidth).Align(lipgloss.Right).Render(display(o))
			line := "  " + label + "  " + value
			if o.Unit != "" {
				line += " " + o.Unit
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		if f.opts.ShowNotes {
			for _, n := range res.Notes {
				b.WriteString(noteStyle.Render("  note: " + n))
				b.WriteString("\n")
			}
		}
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}
