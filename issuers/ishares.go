package issuers

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ledgerline/baskets"
)

// iShares parses the holdings CSV download published for iShares ETFs.
//
// The file carries a few preamble lines (fund name, date, disclaimers)
// before the real header, and the record section may be followed by blank
// lines and footnotes, so records are matched against the header row rather
// than read positionally.
type iShares struct{}

func (iShares) Parse(r io.Reader) (baskets.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return baskets.Table{}, fmt.Errorf("cannot read iShares file: %w", err)
	}

	header, records, err := splitHeader(records, "Weight (%)")
	if err != nil {
		return baskets.Table{}, fmt.Errorf("iShares file: %w", err)
	}
	name := slices.Index(header, "Name")
	ticker := slices.Index(header, "Ticker")
	class := slices.Index(header, "Asset Class")
	weight := slices.Index(header, "Weight (%)")
	isin := slices.Index(header, "ISIN")
	sedol := slices.Index(header, "SEDOL")
	if name < 0 || class < 0 || weight < 0 {
		return baskets.Table{}, fmt.Errorf("iShares file: header misses Name, Asset Class or Weight (%%)")
	}

	columns := []baskets.Column{
		{Name: "fraction", Kind: baskets.Float},
		{Name: "asstype", Kind: baskets.String},
		{Name: "name", Kind: baskets.String},
	}
	for _, opt := range []struct {
		col string
		i   int
	}{{"ticker", ticker}, {"isin", isin}, {"sedol", sedol}} {
		if opt.i >= 0 {
			columns = append(columns, baskets.Column{Name: opt.col, Kind: baskets.String})
		}
	}

	var rows [][]any
	for _, record := range records {
		if len(record) <= weight || strings.TrimSpace(record[name]) == "" {
			break // footnote section
		}
		w, err := strconv.ParseFloat(strings.ReplaceAll(record[weight], ",", ""), 64)
		if err != nil {
			return baskets.Table{}, fmt.Errorf("iShares file: bad weight %q for %q: %w", record[weight], record[name], err)
		}
		asstype, err := assetType(record[class])
		if err != nil {
			return baskets.Table{}, fmt.Errorf("iShares file: %q: %w", record[name], err)
		}
		row := []any{w / 100, string(asstype), record[name]}
		for _, i := range []int{ticker, isin, sedol} {
			if i >= 0 {
				row = append(row, record[i])
			}
		}
		rows = append(rows, row)
	}
	return baskets.NewTable(columns, rows)
}

// splitHeader locates the record header, the first row containing marker, and
// returns it with the rows that follow.
func splitHeader(records [][]string, marker string) ([]string, [][]string, error) {
	for i, record := range records {
		if slices.Contains(record, marker) {
			return record, records[i+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("no header row containing %q", marker)
}
