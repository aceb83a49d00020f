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

// stateStreet parses the SPDR holdings CSV download. Weights are
// percent-formatted strings ("1.23%"), the cash sleeve is reported as an
// asset named after the local currency with an empty identifier pair.
type stateStreet struct{}

func (stateStreet) Parse(r io.Reader) (baskets.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return baskets.Table{}, fmt.Errorf("cannot read StateStreet file: %w", err)
	}

	header, records, err := splitHeader(records, "Weight")
	if err != nil {
		return baskets.Table{}, fmt.Errorf("StateStreet file: %w", err)
	}
	name := slices.Index(header, "Name")
	ticker := slices.Index(header, "Ticker")
	sedol := slices.Index(header, "SEDOL")
	weight := slices.Index(header, "Weight")
	if name < 0 || ticker < 0 || weight < 0 {
		return baskets.Table{}, fmt.Errorf("StateStreet file: header misses Name, Ticker or Weight")
	}

	columns := []baskets.Column{
		{Name: "fraction", Kind: baskets.Float},
		{Name: "asstype", Kind: baskets.String},
		{Name: "name", Kind: baskets.String},
		{Name: "ticker", Kind: baskets.String},
	}
	if sedol >= 0 {
		columns = append(columns, baskets.Column{Name: "sedol", Kind: baskets.String})
	}

	var rows [][]any
	for _, record := range records {
		if len(record) <= weight || strings.TrimSpace(record[name]) == "" {
			break
		}
		raw := strings.TrimSuffix(strings.TrimSpace(record[weight]), "%")
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return baskets.Table{}, fmt.Errorf("StateStreet file: bad weight %q for %q: %w", record[weight], record[name], err)
		}
		asstype := baskets.Equity
		if strings.Contains(strings.ToUpper(record[name]), "CASH") {
			asstype = baskets.ShortTerm
		}
		row := []any{w / 100, string(asstype), record[name], record[ticker]}
		if sedol >= 0 {
			row = append(row, record[sedol])
		}
		rows = append(rows, row)
	}
	return baskets.NewTable(columns, rows)
}
