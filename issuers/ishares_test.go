package issuers

import (
	"math"
	"strings"
	"testing"

	"github.com/ledgerline/baskets"
)

const iSharesSample = `iShares Core S&P 500 ETF
Fund Holdings as of,"Aug 28, 2026"
Inception Date,"May 15, 2000"

Ticker,Name,Sector,Asset Class,Market Value,Weight (%),ISIN,SEDOL
AAPL,APPLE INC,Information Technology,Equity,"1,234,567.89",7.25,US0378331005,2046251
MSFT,MICROSOFT CORP,Information Technology,Equity,"1,111,111.11",6.50,US5949181045,2588173
XTSLA,BLK CSH FND TREASURY SL AGENCY,Cash and/or Derivatives,Money Market,"10,000.00",0.25,,
`

func TestIShares_Parse(t *testing.T) {
	tbl, err := iShares{}.Parse(strings.NewReader(iSharesSample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := baskets.CheckHoldings(tbl); err != nil {
		t.Fatalf("CheckHoldings() error = %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	fractions, err := tbl.Floats("fraction")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if math.Abs(fractions[0]-0.0725) > 1e-12 {
		t.Errorf("fraction[0] = %g, want 0.0725", fractions[0])
	}

	var rows []baskets.Row
	for row := range tbl.Rows() {
		rows = append(rows, row)
	}
	if rows[0].String("name") != "APPLE INC" || rows[0].String("ticker") != "AAPL" {
		t.Errorf("row 0 = (%s, %s), want (APPLE INC, AAPL)", rows[0].String("name"), rows[0].String("ticker"))
	}
	if rows[0].String("isin") != "US0378331005" {
		t.Errorf("isin = %q, want US0378331005", rows[0].String("isin"))
	}
	if rows[2].String("asstype") != string(baskets.ShortTerm) {
		t.Errorf("asstype = %q, want ShortTerm for the cash sleeve", rows[2].String("asstype"))
	}
}

func TestIShares_Parse_rejectsUnknownAssetClass(t *testing.T) {
	in := `Ticker,Name,Asset Class,Weight (%)
GLD,GOLD TRUST,Commodity,1.0
`
	if _, err := (iShares{}).Parse(strings.NewReader(in)); err == nil {
		t.Error("Parse() expected error on unknown asset class")
	}
}

func TestIShares_Parse_missingHeader(t *testing.T) {
	if _, err := (iShares{}).Parse(strings.NewReader("just,a,csv\n1,2,3\n")); err == nil {
		t.Error("Parse() expected error without a holdings header")
	}
}
