package baskets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// this file contains the CSV serialization of a Table, used for the full and
// aggregated exports. WriteCSV and ReadCSV round-trip.

// WriteCSV writes the table as CSV: one header row of column names, then one
// record per row. Float cells are written with the shortest exact
// representation so that reading them back yields the same value.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(cell any) string {
	if f, ok := cell.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(cell)
}

// ReadCSV reads a table written by WriteCSV. Column kinds are recovered by
// inspection: a column is Float only when every cell parses as a number AND
// re-formatting that number reproduces the cell text, so digit-only
// identifiers (a CUSIP like "037833100" keeps its leading zero) stay strings.
// An empty column stays String.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("cannot read CSV: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("cannot read CSV: missing header")
	}
	header, records := records[0], records[1:]

	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: columnKind(records, i)}
	}
	rows := make([][]any, len(records))
	for j, record := range records {
		if len(record) != len(header) {
			return Table{}, fmt.Errorf("cannot read CSV: row %d has %d cells, want %d", j, len(record), len(header))
		}
		row := make([]any, len(record))
		for i, cell := range record {
			if columns[i].Kind == Float {
				f, _ := strconv.ParseFloat(cell, 64)
				row[i] = f
			} else {
				row[i] = cell
			}
		}
		rows[j] = row
	}
	return NewTable(columns, rows)
}

func columnKind(records [][]string, i int) Kind {
	if len(records) == 0 {
		return String
	}
	for _, record := range records {
		if i >= len(record) {
			return String
		}
		f, err := strconv.ParseFloat(record[i], 64)
		if err != nil || formatCell(f) != record[i] {
			// not a number, or not losslessly numeric (leading zeros)
			return String
		}
	}
	return Float
}
