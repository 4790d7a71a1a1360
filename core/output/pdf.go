package output

import (
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"tradecalc/core/calculator"
)

// PDFFormatter writes a printable A4 report
type PDFFormatter struct {
	opts Options

	// Now stamps the report; time.Now when nil
	Now func() time.Time
}

// Format returns FormatPDF
func (f *PDFFormatter) Format() Format { return FormatPDF }

// Render writes the report
func (f *PDFFormatter) Render(w io.Writer, results []calculator.Result) error {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	title := f.opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("tradecalc", false)
	pdf.SetCreationDate(now())
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Date: "+now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, r := range results {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(heading(r)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(90, 7, "Output", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 7, "Value", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 7, "Unit", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, o := range r.Outputs {
			pdf.CellFormat(90, 7, tr(o.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, display(o), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, tr(o.Unit), "1", 1, "L", false, 0, "")
		}

		if f.opts.ShowNotes && len(r.Notes) > 0 {
			pdf.SetFont("Helvetica", "I", 9)
			for _, n := range r.Notes {
				pdf.MultiCell(0, 5, tr("Note: "+n), "", "L", false)
			}
		}
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
