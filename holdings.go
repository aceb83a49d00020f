package baskets

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// AssetType is the asset class an issuer reports for a constituent holding.
type AssetType string

const (
	Equity      AssetType = "Equity"
	FixedIncome AssetType = "FixedIncome"
	ShortTerm   AssetType = "ShortTerm"
)

// AssetTypes is the set of allowed asstype values.
var AssetTypes = []AssetType{Equity, FixedIncome, ShortTerm}

// IDColumns are the identifier columns a holdings row may carry, in priority
// order: aggregation keys a row by the first non-empty one.
var IDColumns = []string{"name", "ticker", "sedol", "isin", "cusip"}

// HoldingsColumns is the canonical column set of a per-fund holdings table
// once provenance has been attached.
var HoldingsColumns = append([]string{"etf", "account", "fraction", "asstype"}, IDColumns...)

// CheckHoldings verifies the contract of a raw holdings table as produced by
// an issuer parser: only the allowed columns, both asstype and fraction
// present, at least one identifier column, and every asstype value a member
// of AssetTypes. A failure is a *SchemaViolation.
func CheckHoldings(t Table) error {
	allowed := append([]string{"asstype", "fraction"}, IDColumns...)
	var extra []string
	for _, name := range t.Columns() {
		if !slices.Contains(allowed, name) {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return &SchemaViolation{Reason: "extra columns found", Columns: extra}
	}

	var required []string
	for _, name := range []string{"asstype", "fraction"} {
		if !t.HasColumn(name) {
			required = append(required, name)
		}
	}
	if len(required) > 0 {
		return &SchemaViolation{Reason: "required columns missing", Columns: required}
	}

	ids := false
	for _, name := range IDColumns {
		if t.HasColumn(name) {
			ids = true
			break
		}
	}
	if !ids {
		return &SchemaViolation{Reason: "no identifier columns found", Columns: t.Columns()}
	}

	values, err := t.Values("asstype")
	if err != nil {
		return err
	}
	for _, v := range values {
		s, _ := v.(string)
		if !slices.Contains(AssetTypes, AssetType(s)) {
			return &SchemaViolation{Reason: "invalid asstype", Value: fmt.Sprint(v)}
		}
	}
	return nil
}

// AddMissingColumns adds every absent identifier column, populated with the
// empty-string sentinel, so tables from heterogeneous issuers share a uniform
// schema before Concat. Idempotent.
func AddMissingColumns(t Table) Table {
	for _, name := range IDColumns {
		if t.HasColumn(name) {
			continue
		}
		// cannot fail: the column was just checked absent
		t, _ = t.Create(name, String, func(Row) any { return "" })
	}
	return t
}

// Weight sums outside this band trigger a WeightDrift diagnostic.
const (
	weightLow  = 0.98
	weightHigh = 1.02
)

// NormalizeHoldings rescales the fraction column so the weights sum to
// exactly 1.0. Issuer files routinely omit cash sleeves or round imprecisely;
// renormalizing keeps downstream dollar totals reconciled to the parent
// position while the returned diagnostic preserves an audit signal when the
// raw sum drifts outside (0.98, 1.02).
func NormalizeHoldings(t Table) (Table, *Diagnostic, error) {
	fractions, err := t.Floats("fraction")
	if err != nil {
		return Table{}, nil, err
	}
	total := floats.Sum(fractions)
	if total <= 0 {
		return Table{}, nil, &SchemaViolation{Reason: "total weight is not positive", Value: fmt.Sprintf("%g", total)}
	}
	var diag *Diagnostic
	if total <= weightLow || total >= weightHigh {
		diag = &Diagnostic{Kind: WeightDrift, Detail: fmt.Sprintf("total weight %g before renormalization", total)}
	}
	scale := 1 / total
	nt, err := t.Map("fraction", Float, func(v any) any { return v.(float64) * scale })
	if err != nil {
		return Table{}, nil, err
	}
	return nt, diag, nil
}
