package baskets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func newTestTable(t *testing.T) Table {
	t.Helper()
	tbl, err := NewTable(
		[]Column{{Name: "ticker", Kind: String}, {Name: "fraction", Kind: Float}},
		[][]any{{"AAPL", 0.6}, {"MSFT", 0.4}},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestNewTable_rejectsDuplicateColumn(t *testing.T) {
	_, err := NewTable([]Column{{Name: "a"}, {Name: "a"}}, nil)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("NewTable() error = %v, want SchemaError", err)
	}
}

func TestNewTable_rejectsArityMismatch(t *testing.T) {
	_, err := NewTable([]Column{{Name: "a"}}, [][]any{{"x", "y"}})
	if err == nil {
		t.Fatal("NewTable() expected error on arity mismatch")
	}
}

func TestTable_SelectAllIsIdentity(t *testing.T) {
	tbl := newTestTable(t)
	sel, err := tbl.Select(tbl.Columns()...)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !slices.Equal(sel.Columns(), tbl.Columns()) {
		t.Errorf("Select() columns = %v, want %v", sel.Columns(), tbl.Columns())
	}
	if sel.Len() != tbl.Len() {
		t.Errorf("Select() len = %d, want %d", sel.Len(), tbl.Len())
	}
	for row := range sel.Rows() {
		if row.String("ticker") == "" {
			t.Error("Select() lost ticker values")
		}
	}
}

func TestTable_SelectReorders(t *testing.T) {
	tbl := newTestTable(t)
	sel, err := tbl.Select("fraction", "ticker")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	want := []string{"fraction", "ticker"}
	if !slices.Equal(sel.Columns(), want) {
		t.Errorf("Select() columns = %v, want %v", sel.Columns(), want)
	}
}

func TestTable_SelectUnknownColumn(t *testing.T) {
	tbl := newTestTable(t)
	_, err := tbl.Select("nope")
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("Select() error = %v, want SchemaError", err)
	}
	if !slices.Contains(serr.Columns, "nope") {
		t.Errorf("SchemaError.Columns = %v, want to contain %q", serr.Columns, "nope")
	}
}

func TestTable_CreateAndDelete(t *testing.T) {
	tbl := newTestTable(t)
	created, err := tbl.Create("double", Float, func(r Row) any { return r.Float("fraction") * 2 })
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	doubles, err := created.Floats("double")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if doubles[0] != 1.2 || doubles[1] != 0.8 {
		t.Errorf("Create() values = %v, want [1.2 0.8]", doubles)
	}

	// the receiver is untouched
	if tbl.HasColumn("double") {
		t.Error("Create() mutated the receiver")
	}

	if _, err := created.Create("double", Float, nil); err == nil {
		t.Error("Create() expected error on existing column")
	}

	deleted, err := created.Delete("double")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.HasColumn("double") {
		t.Error("Delete() kept the column")
	}
	if _, err := deleted.Delete("double"); err == nil {
		t.Error("Delete() expected error on absent column")
	}
}

func TestTable_Map(t *testing.T) {
	tbl := newTestTable(t)
	mapped, err := tbl.Map("fraction", Float, func(v any) any { return v.(float64) * 10 })
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	got, _ := mapped.Floats("fraction")
	if got[0] != 6.0 || got[1] != 4.0 {
		t.Errorf("Map() values = %v, want [6 4]", got)
	}
	// original values survive
	old, _ := tbl.Floats("fraction")
	if old[0] != 0.6 {
		t.Errorf("Map() mutated the receiver: %v", old)
	}
}

func TestTable_OrderIsStable(t *testing.T) {
	tbl, err := NewTable(
		[]Column{{Name: "k", Kind: String}, {Name: "v", Kind: String}},
		[][]any{{"b", "1"}, {"a", "2"}, {"b", "3"}, {"a", "4"}},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	ordered := tbl.Order(func(a, b Row) int { return strings.Compare(a.String("k"), b.String("k")) })
	values, _ := ordered.Values("v")
	want := []any{"2", "4", "1", "3"}
	if !slices.Equal(values, want) {
		t.Errorf("Order() values = %v, want %v", values, want)
	}
}

func TestConcat(t *testing.T) {
	tbl := newTestTable(t)
	both, err := Concat(tbl, tbl)
	if err != nil {
		t.Fatalf("Concat() error = %v", err)
	}
	if both.Len() != 2*tbl.Len() {
		t.Errorf("Concat() len = %d, want %d", both.Len(), 2*tbl.Len())
	}
	if !slices.Equal(both.Columns(), tbl.Columns()) {
		t.Errorf("Concat() columns = %v, want %v", both.Columns(), tbl.Columns())
	}
}

func TestConcat_rejectsSchemaMismatch(t *testing.T) {
	tbl := newTestTable(t)
	other, err := tbl.Create("extra", String, func(Row) any { return "" })
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	var serr *SchemaError
	if _, err := Concat(tbl, other); !errors.As(err, &serr) {
		t.Fatalf("Concat() error = %v, want SchemaError", err)
	}
	// ordering matters too: same names in a different order is a mismatch
	reordered, _ := tbl.Select("fraction", "ticker")
	if _, err := Concat(tbl, reordered); !errors.As(err, &serr) {
		t.Fatalf("Concat() error = %v, want SchemaError on reordered columns", err)
	}
}

func TestTable_Head(t *testing.T) {
	tbl := newTestTable(t)
	if got := tbl.Head(1).Len(); got != 1 {
		t.Errorf("Head(1) len = %d, want 1", got)
	}
	if got := tbl.Head(10).Len(); got != 2 {
		t.Errorf("Head(10) len = %d, want 2", got)
	}
	if got := tbl.Head(0).Len(); got != 0 {
		t.Errorf("Head(0) len = %d, want 0", got)
	}
}

func TestTable_Floats_rejectsNonFloatCell(t *testing.T) {
	tbl := newTestTable(t)
	if _, err := tbl.Floats("ticker"); err == nil {
		t.Error("Floats() expected error on string column")
	}
}
