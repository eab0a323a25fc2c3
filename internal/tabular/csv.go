package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

func init() {
	Register(Format{
		Name:       "csv",
		Extensions: []string{".csv", ".txt"},
		Read:       ReadCSV,
		Write:      WriteCSV,
	})
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// ReadCSV reads a delimited file whose first record is the header.
//
// Input is decoded from opts.Encoding, a UTF-8 BOM is skipped and invalid
// UTF-8 bytes are replaced. Empty cells become missing values.
func ReadCSV(r io.Reader, opts Options) (*Table, error) {
	src, err := decodingReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.Comma = opts.comma()
	cr.FieldsPerRecord = -1 // ragged rows are padded by NewTable
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	var rows [][]any
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		rows = append(rows, textCells(record))
	}

	return NewTable(header, rows), nil
}

// WriteCSV writes the header followed by every row. Missing cells are
// written as empty fields.
func WriteCSV(w io.Writer, t *Table, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma()

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Header))
	for i, row := range t.Rows {
		for j := range record {
			record[j] = ""
			if j < len(row) {
				record[j] = cellString(row[j])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
