package output

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"tradecalc/core/calculator"
)

// XLSXFormatter writes a workbook with one sheet per tool.
// Each sheet has a header row of output labels and one row per result.
type XLSXFormatter struct {
	opts Options
}

// Format returns FormatXLSX
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// Render writes the workbook
func (f *XLSXFormatter) Render(w io.Writer, results []calculator.Result) error {
	book := excelize.NewFile()
	defer book.Close()

	header, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	var order []calculator.Name
	groups := make(map[calculator.Name][]calculator.Result)
	for _, r := range results {
		if _, ok := groups[r.Tool]; !ok {
			order = append(order, r.Tool)
		}
		groups[r.Tool] = append(groups[r.Tool], r)
	}

	if len(order) == 0 {
		return book.Write(w)
	}

	for i, tool := range order {
		sheet := string(tool)
		if i == 0 {
			if err := book.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := book.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(book, sheet, groups[tool], header, f.opts.ShowNotes); err != nil {
			return err
		}
	}
	book.SetActiveSheet(0)
	return book.Write(w)
}

func writeSheet(book *excelize.File, sheet string, results []calculator.Result, headerStyle int, notes bool) error {
	first := results[0]

	row := []interface{}{"Label"}
	for _, o := range first.Outputs {
		title := o.Label
		if o.Unit != "" {
			title += " (" + o.Unit + ")"
		}
		row = append(row, title)
	}
	if notes {
		row = append(row, "Notes")
	}
	if err := book.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(row), 1)
	if err != nil {
		return err
	}
	if err := book.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range results {
		row := []interface{}{r.Label}
		for _, o := range r.Outputs {
			row = append(row, cellValue(o))
		}
		if notes {
			row = append(row, strings.Join(r.Notes, "; "))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps numbers numeric; non-finite values are written as text
func cellValue(o calculator.Output) interface{} {
	s := display(o)
	switch s {
	case "NaN", "+Inf", "-Inf":
		return s
	}
	return o.Value
}
