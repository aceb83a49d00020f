package baskets

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Group consolidates a full holdings table into one row per security.
//
// A row's identity is the first non-empty identifier column in IDColumns
// priority order. Rows sharing an identity are further partitioned by asstype
// so a data error never merges amounts across asset classes. Amounts are
// summed per partition and the result is sorted by descending amount.
//
// Rows with every identifier empty cannot be aggregated; they are excluded
// and surfaced as IdentityMissing diagnostics rather than silently dropped.
func Group(full Table) (Table, []Diagnostic, error) {
	for _, name := range []string{"asstype", "amount"} {
		if !full.HasColumn(name) {
			return Table{}, nil, &SchemaViolation{Reason: "required columns missing", Columns: []string{name}}
		}
	}

	type partition struct {
		id      string
		asstype string
	}
	var order []partition
	sums := make(map[partition]float64)
	var diags []Diagnostic

	for row := range full.Rows() {
		id := identity(row)
		if id == "" {
			diags = append(diags, Diagnostic{
				Kind:   IdentityMissing,
				Ticker: row.String("etf"),
				Detail: fmt.Sprintf("amount %.2f has no identifier, excluded from aggregate", row.Float("amount")),
			})
			continue
		}
		p := partition{id: id, asstype: row.String("asstype")}
		if _, ok := sums[p]; !ok {
			order = append(order, p)
		}
		sums[p] += row.Float("amount")
	}

	rows := make([][]any, len(order))
	for i, p := range order {
		rows[i] = []any{p.id, p.asstype, sums[p]}
	}
	agg, err := NewTable([]Column{
		{Name: "id", Kind: String},
		{Name: "asstype", Kind: String},
		{Name: "amount", Kind: Float},
	}, rows)
	if err != nil {
		return Table{}, nil, err
	}
	agg = agg.Order(func(a, b Row) int {
		if c := cmpFloat(b.Float("amount"), a.Float("amount")); c != 0 {
			return c
		}
		return strings.Compare(a.String("id"), b.String("id"))
	})
	return agg, diags, nil
}

// identity returns the row's aggregation key: the first non-empty identifier
// column in priority order, or "".
func identity(row Row) string {
	for _, name := range IDColumns {
		if v := row.String(name); v != "" {
			return v
		}
	}
	return ""
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// HeadSize returns how many leading amounts to keep so that only the
// cumulative tail beyond total×tail is cut: the count of rows whose running
// sum is strictly less than the threshold. Amounts are expected sorted
// descending, as Group produces them.
func HeadSize(amounts []float64, tail float64) int {
	if len(amounts) == 0 {
		return 0
	}
	threshold := floats.Sum(amounts) * tail
	cum := make([]float64, len(amounts))
	floats.CumSum(cum, amounts)
	n := 0
	for _, c := range cum {
		if c < threshold {
			n++
		}
	}
	return n
}

// Total sums the amount column of a table.
func Total(t Table) (float64, error) {
	amounts, err := t.Floats("amount")
	if err != nil {
		return 0, err
	}
	return floats.Sum(amounts), nil
}
