package baskets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Parser turns the content of a downloaded issuer file into a raw holdings
// table honoring the CheckHoldings contract.
type Parser interface {
	Parse(r io.Reader) (Table, error)
}

// FullColumns is the schema of the full per-fund-holding table the pipeline
// produces: canonical holdings columns with fraction replaced by amount.
var FullColumns = []string{"etf", "account", "asstype", "name", "ticker", "sedol", "isin", "cusip", "amount"}

// Pipeline resolves portfolio positions into a single full holdings table.
// Both collaborators are injected: the store locating downloaded files and
// the per-issuer parser registry.
type Pipeline struct {
	Store        FileStore
	Parsers      map[string]Parser
	IgnoreShorts bool
}

// Run processes every position, in ascending (issuer, ticker) order, and
// concatenates the per-position holdings into one table.
//
// Row-level problems (unknown issuer, missing file, rejected holdings) never
// abort the batch: the position is skipped and a Diagnostic records it. The
// returned error is reserved for structural failures.
func (p *Pipeline) Run(positions []Position) (Table, []Diagnostic, error) {
	positions = slices.Clone(positions)
	slices.SortStableFunc(positions, func(a, b Position) int {
		if c := strings.Compare(a.Issuer, b.Issuer); c != 0 {
			return c
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})

	var tables []Table
	var diags []Diagnostic
	for _, pos := range positions {
		if pos.Number < 0 && p.IgnoreShorts {
			continue
		}

		holdings, ok, posDiags, err := p.resolve(pos)
		diags = append(diags, posDiags...)
		if err != nil {
			return Table{}, diags, err
		}
		if !ok {
			continue
		}

		holdings, err = p.fixup(holdings, pos)
		if err != nil {
			return Table{}, diags, err
		}
		tables = append(tables, holdings)
	}

	if len(tables) == 0 {
		return emptyFullTable(), diags, nil
	}
	full, err := Concat(tables...)
	if err != nil {
		return Table{}, diags, err
	}
	return full, diags, nil
}

// resolve produces the raw, normalized holdings table for one position. ok
// reports whether the position contributes to the run; when it is false the
// returned diagnostics explain the skip.
func (p *Pipeline) resolve(pos Position) (t Table, ok bool, diags []Diagnostic, err error) {
	if pos.Issuer == "" {
		// A direct holding looks through to itself.
		t, err := NewTable(
			[]Column{{Name: "fraction", Kind: Float}, {Name: "asstype", Kind: String}, {Name: "ticker", Kind: String}},
			[][]any{{1.0, string(Equity), pos.Ticker}},
		)
		return t, err == nil, nil, err
	}

	skip := func(kind DiagKind, detail string) (Table, bool, []Diagnostic, error) {
		return Table{}, false, []Diagnostic{{Kind: kind, Ticker: pos.Ticker, Issuer: pos.Issuer, Detail: detail}}, nil
	}

	parser, found := p.Parsers[pos.Issuer]
	if !found {
		return skip(LookupMiss, "no parser registered")
	}
	filename, err := p.Store.Latest(pos.Ticker)
	if errors.Is(err, fs.ErrNotExist) {
		return skip(LookupMiss, "no downloaded file")
	}
	if err != nil {
		return Table{}, false, nil, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return Table{}, false, nil, fmt.Errorf("cannot open %q: %w", filename, err)
	}
	defer f.Close()

	holdings, err := parser.Parse(f)
	if err != nil {
		return skip(HoldingsRejected, err.Error())
	}
	if err := CheckHoldings(holdings); err != nil {
		return skip(HoldingsRejected, err.Error())
	}

	holdings, drift, err := NormalizeHoldings(holdings)
	if err != nil {
		return skip(HoldingsRejected, err.Error())
	}
	if drift != nil {
		drift.Ticker, drift.Issuer = pos.Ticker, pos.Issuer
		diags = append(diags, *drift)
	}
	return holdings, true, diags, nil
}

// fixup attaches provenance and converts weights to currency amounts.
func (p *Pipeline) fixup(holdings Table, pos Position) (Table, error) {
	holdings = AddMissingColumns(holdings)
	holdings, err := holdings.Create("etf", String, func(Row) any { return pos.Ticker })
	if err != nil {
		return Table{}, err
	}
	holdings, err = holdings.Create("account", String, func(Row) any { return pos.Account })
	if err != nil {
		return Table{}, err
	}
	holdings, err = holdings.Select(HoldingsColumns...)
	if err != nil {
		return Table{}, err
	}

	// number × price through decimal, so a large position does not pick up
	// binary rounding before it is spread over thousands of fractions.
	dollar := decimal.NewFromFloat(pos.Number).Mul(decimal.NewFromFloat(pos.Price)).InexactFloat64()
	holdings, err = holdings.Create("amount", Float, func(r Row) any { return r.Float("fraction") * dollar })
	if err != nil {
		return Table{}, err
	}
	return holdings.Delete("fraction")
}

func emptyFullTable() Table {
	columns := make([]Column, len(FullColumns))
	for i, name := range FullColumns {
		kind := String
		if name == "amount" {
			kind = Float
		}
		columns[i] = Column{Name: name, Kind: kind}
	}
	t, _ := NewTable(columns, nil)
	return t
}
