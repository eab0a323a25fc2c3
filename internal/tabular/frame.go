// Package tabular provides the small tabular-data surface that batch
// annotation needs: named column access, an element-wise column map, and
// in-place column assignment. CSV and XLSX files are read into and written
// from an in-memory [Table].
package tabular

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrLengthMismatch is returned when an assigned column does not have
	// one value per row.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrEmptyInput is returned when a file has no header row.
	ErrEmptyInput = errors.New("empty file")

	// ErrSheetNotFound is returned when a workbook has no sheet with the
	// requested name.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Frame is a column-addressable dataset.
//
// Missing cells are represented by nil.
type Frame interface {
	// Column returns the values of the named column, one per row.
	Column(name string) ([]any, error)

	// SetColumn replaces the named column, or appends it if absent.
	SetColumn(name string, values []any) error
}

// Apply returns a new column holding fn applied to every value.
func Apply(values []any, fn func(any) any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = fn(v)
	}
	return out
}

// Table is an in-memory Frame. Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]any
}

// NewTable builds a Table, padding short rows with missing cells and widening
// the header (with unnamed columns) for rows longer than it.
func NewTable(header []string, rows [][]any) *Table {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t := &Table{
		Header: make([]string, width),
		Rows:   make([][]any, len(rows)),
	}
	copy(t.Header, header)
	for i, row := range rows {
		padded := make([]any, width)
		copy(padded, row)
		t.Rows[i] = padded
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column implements Frame. Names match exactly first, then
// case-insensitively after CleanCell.
func (t *Table) Column(name string) ([]any, error) {
	pos, ok := t.index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[pos]
	}
	return out, nil
}

// SetColumn implements Frame.
func (t *Table) SetColumn(name string, values []any) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows",
			ErrLengthMismatch, name, len(values), len(t.Rows))
	}

	pos, ok := t.index(name)
	if !ok {
		t.Header = append(t.Header, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], values[i])
		}
		return nil
	}

	for i := range t.Rows {
		t.Rows[i][pos] = values[i]
	}
	return nil
}

// index resolves a column name to its position. The first matching header
// wins when names repeat. Blank names never match, so unnamed columns are
// not addressable.
func (t *Table) index(name string) (int, bool) {
	key := headerKey(name)
	if key == "" {
		return 0, false
	}

	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	for i, h := range t.Header {
		if headerKey(h) == key {
			return i, true
		}
	}
	return 0, false
}

// headerKey is the case-insensitive comparison form of a header cell.
func headerKey(s string) string {
	return strings.ToLower(CleanCell(s))
}

// CleanCell removes common spreadsheet artifacts from a cell value:
//   - surrounding whitespace
//   - Excel formula prefix (="...")
//   - surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// cellString renders a cell for text output. Missing cells are empty.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case *string:
		if c == nil {
			return ""
		}
		return *c
	default:
		return fmt.Sprint(c)
	}
}

// textCells converts raw text cells to Frame values; empty cells are missing.
func textCells(record []string) []any {
	row := make([]any, len(record))
	for i, s := range record {
		if s == "" {
			continue
		}
		row[i] = s
	}
	return row
}
