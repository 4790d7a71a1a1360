package job

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"tradecalc/core/calculator"
)

// labelColumn holds the estimate label when present in a header row
const labelColumn = "label"

// decodeXLSX reads a workbook with one sheet per tool. The sheet name is
// the tool name, the first row holds field names and every following
// non-empty row is one estimate. Empty cells are left out of the fields.
func decodeXLSX(r io.Reader, filename string) (*Job, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	job := &Job{}
	var errs error
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s[%s]: %w", filename, sheet, err))
			continue
		}
		if len(rows) == 0 {
			continue
		}

		header := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			header[i] = strings.ToLower(strings.TrimSpace(h))
		}

		for n, row := range rows[1:] {
			req, ok := rowRequest(sheet, header, row)
			if !ok {
				continue
			}
			req.Source = fmt.Sprintf("%s[%s]:%d", filename, sheet, n+2)
			job.Requests = append(job.Requests, req)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return job, nil
}

func rowRequest(sheet string, header, row []string) (Request, bool) {
	req := Request{
		Tool:   strings.TrimSpace(sheet),
		Fields: make(calculator.Fields),
	}

	empty := true
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" || i >= len(header) || header[i] == "" {
			continue
		}
		empty = false
		if header[i] == labelColumn {
			req.Label = cell
			continue
		}
		req.Fields[header[i]] = cell
	}
	return req, !empty
}
