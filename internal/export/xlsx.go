// Package export renders report tables as XLSX workbooks.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoHeaders is returned for a table without columns.
var ErrNoHeaders = errors.New("table has no headers")

// Table is a sheet of rows under a header row.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// AddRow appends a row of cell values.
func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// XLSX renders the table into a single-sheet workbook with a bold, frozen
// header row.
func XLSX(t Table) (*bytes.Buffer, error) {
	if len(t.Headers) == 0 {
		return nil, ErrNoHeaders
	}
	sheet := t.Sheet
	if sheet == "" {
		sheet = "Report"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
