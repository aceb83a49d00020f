package baskets

import (
	"testing"
)

func newFullTable(t *testing.T, rows [][]any) Table {
	t.Helper()
	columns := []Column{
		{Name: "etf", Kind: String},
		{Name: "asstype", Kind: String},
		{Name: "name", Kind: String},
		{Name: "ticker", Kind: String},
		{Name: "sedol", Kind: String},
		{Name: "isin", Kind: String},
		{Name: "cusip", Kind: String},
		{Name: "amount", Kind: Float},
	}
	tbl, err := NewTable(columns, rows)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func fullRow(etf, asstype, name, ticker string, amount float64) []any {
	return []any{etf, asstype, name, ticker, "", "", "", amount}
}

func TestGroup_sumsByIdentity(t *testing.T) {
	full := newFullTable(t, [][]any{
		fullRow("VT", "Equity", "", "X", 100),
		fullRow("SPY", "Equity", "", "X", 50),
	})
	agg, diags, err := Group(full)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Group() diags = %v, want none", diags)
	}
	if agg.Len() != 1 {
		t.Fatalf("Group() len = %d, want 1", agg.Len())
	}
	for row := range agg.Rows() {
		if row.String("id") != "X" || row.String("asstype") != "Equity" || row.Float("amount") != 150 {
			t.Errorf("Group() row = (%s, %s, %g), want (X, Equity, 150)",
				row.String("id"), row.String("asstype"), row.Float("amount"))
		}
	}
}

func TestGroup_doesNotMergeAcrossAssetTypes(t *testing.T) {
	full := newFullTable(t, [][]any{
		fullRow("VT", "Equity", "", "X", 100),
		fullRow("VT", "FixedIncome", "", "X", 50),
	})
	agg, _, err := Group(full)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if agg.Len() != 2 {
		t.Errorf("Group() len = %d, want 2 (no cross-asstype merge)", agg.Len())
	}
}

func TestGroup_identityPriority(t *testing.T) {
	// name outranks ticker as the aggregation key
	full := newFullTable(t, [][]any{
		fullRow("VT", "Equity", "Apple Inc", "AAPL", 100),
		fullRow("SPY", "Equity", "Apple Inc", "", 50),
	})
	agg, _, err := Group(full)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if agg.Len() != 1 {
		t.Fatalf("Group() len = %d, want 1 keyed on name", agg.Len())
	}
	for row := range agg.Rows() {
		if row.String("id") != "Apple Inc" {
			t.Errorf("Group() id = %q, want %q", row.String("id"), "Apple Inc")
		}
	}
}

func TestGroup_surfacesMissingIdentity(t *testing.T) {
	full := newFullTable(t, [][]any{
		fullRow("VT", "Equity", "", "", 100),
		fullRow("VT", "Equity", "", "X", 50),
	})
	agg, diags, err := Group(full)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if len(diags) != 1 || diags[0].Kind != IdentityMissing {
		t.Fatalf("Group() diags = %v, want one IdentityMissing", diags)
	}
	if diags[0].Ticker != "VT" {
		t.Errorf("diagnostic names %q, want the parent fund VT", diags[0].Ticker)
	}
	if agg.Len() != 1 {
		t.Errorf("Group() len = %d, want 1 (unidentifiable row excluded)", agg.Len())
	}
}

func TestGroup_sortsByDescendingAmount(t *testing.T) {
	full := newFullTable(t, [][]any{
		fullRow("VT", "Equity", "", "small", 10),
		fullRow("VT", "Equity", "", "big", 300),
		fullRow("VT", "Equity", "", "mid", 100),
	})
	agg, _, err := Group(full)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	amounts, err := agg.Floats("amount")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	for i := 1; i < len(amounts); i++ {
		if amounts[i] > amounts[i-1] {
			t.Fatalf("Group() amounts not descending: %v", amounts)
		}
	}
}

func TestGroup_rejectsMissingAmount(t *testing.T) {
	tbl, err := NewTable([]Column{{Name: "asstype", Kind: String}}, nil)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if _, _, err := Group(tbl); err == nil {
		t.Error("Group() expected error without amount column")
	}
}

func TestHeadSize(t *testing.T) {
	// cumulative sums 500, 800, 950, 1000 against threshold 980: the first
	// three stay strictly below it.
	amounts := []float64{500, 300, 150, 50}
	if got := HeadSize(amounts, 0.98); got != 3 {
		t.Errorf("HeadSize() = %d, want 3", got)
	}
	if got := HeadSize(nil, 0.98); got != 0 {
		t.Errorf("HeadSize(nil) = %d, want 0", got)
	}
	if got := HeadSize(amounts, 1.0); got != 3 {
		t.Errorf("HeadSize(tail=1) = %d, want 3 (last row reaches the total)", got)
	}
}
