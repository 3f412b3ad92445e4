// Package export renders diet plans as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type column struct {
	title string
	width float64
}

// workbook writes one table per sheet, header row styled and frozen.
type workbook struct {
	f           *excelize.File
	headerStyle int
	first       string
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &workbook{f: f, headerStyle: style}, nil
}

func (w *workbook) table(sheet string, cols []column, rows [][]any) error {
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if w.first == "" {
		w.first = sheet
	}

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := w.f.SetCellValue(sheet, cell, c.title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, w.headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := w.f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := w.f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}

	if err := w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

// encode drops the default sheet, activates the first table and serializes.
// The workbook is closed afterwards.
func (w *workbook) encode() ([]byte, error) {
	defer w.f.Close()

	if err := w.f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if idx, err := w.f.GetSheetIndex(w.first); err == nil && idx >= 0 {
		w.f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if _, err := w.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *workbook) close() {
	w.f.Close()
}
