package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet name excelize creates in a new workbook.
const defaultSheet = "Sheet1"

func init() {
	Register(Format{
		Name:       "xlsx",
		Extensions: []string{".xlsx", ".xlsm"},
		Read:       ReadXLSX,
		Write:      WriteXLSX,
	})
}

// ReadXLSX reads one worksheet whose first row is the header.
// opts.Sheet selects the sheet; the first sheet is used when it is empty.
func ReadXLSX(r io.Reader, opts Options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptyInput)
	}

	if idx, err := f.GetSheetIndex(sheet); idx == -1 {
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrSheetNotFound, sheet, err)
		}
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no rows", ErrEmptyInput, sheet)
	}

	data := make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		data = append(data, textCells(row))
	}
	return NewTable(rows[0], data), nil
}

// WriteXLSX writes the table to a single-sheet workbook with a bold header.
// Missing cells are left blank.
func WriteXLSX(w io.Writer, t *Table, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("name sheet %q: %w", sheet, err)
		}
	}

	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", col+1, err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %q: %w", h, err)
		}
	}

	if len(t.Header) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("create header style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for r, row := range t.Rows {
		for col, v := range row {
			if v == nil {
				continue
			}
			if p, ok := v.(*string); ok {
				v = cellString(p)
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", r+2, col+1, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
