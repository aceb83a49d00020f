package baskets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"slices"

	"github.com/gocarina/gocsv"
)

// Position is one row of the exported portfolio positions file. A position
// with an empty Issuer is a direct holding; any other Issuer names the fund
// family whose parser resolves the position into constituent holdings.
type Position struct {
	Ticker  string  `csv:"ticker"`
	Account string  `csv:"account"`
	Issuer  string  `csv:"issuer"`
	Price   float64 `csv:"price"`
	Number  float64 `csv:"number"`
}

// PositionColumns are the columns the positions file must declare.
var PositionColumns = []string{"ticker", "account", "issuer", "price", "number"}

// An OCC-style option symbol: root, yymmdd expiry, C or P, strike ×1000 in
// eight digits.
var optionTicker = regexp.MustCompile(`\d{6}[CP]\d{8}$`)

// ReadPositions loads the positions CSV. A missing required column is a
// *SchemaViolation, fatal to the whole run. With ignoreOptions set, positions
// whose ticker is an option symbol are dropped at load.
func ReadPositions(r io.Reader, ignoreOptions bool) ([]Position, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read positions: %w", err)
	}
	if err := checkPositionColumns(data); err != nil {
		return nil, err
	}

	var positions []Position
	if err := gocsv.UnmarshalBytes(data, &positions); err != nil {
		return nil, fmt.Errorf("cannot parse positions: %w", err)
	}

	if !ignoreOptions {
		return positions, nil
	}
	kept := positions[:0]
	for _, p := range positions {
		if optionTicker.MatchString(p.Ticker) {
			continue
		}
		kept = append(kept, p)
	}
	return kept, nil
}

// checkPositionColumns validates the header before gocsv gets to map it, so a
// truncated export fails loudly instead of yielding zero values.
func checkPositionColumns(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("cannot read positions header: %w", err)
	}
	var missing []string
	for _, name := range PositionColumns {
		if !slices.Contains(header, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaViolation{Reason: "positions file missing columns", Columns: missing}
	}
	return nil
}
