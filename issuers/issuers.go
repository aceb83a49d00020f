// Package issuers implements the per-issuer parsers that read downloaded
// fund-holdings files into raw holdings tables.
//
// Every parser honors the same contract: it returns a table with a
// `fraction` column (weights, not yet renormalized), an `asstype` column and
// at least one identifier column, as baskets.CheckHoldings requires.
package issuers

import (
	"fmt"

	"github.com/ledgerline/baskets"
)

// Registry returns the parsers for the issuers we know how to read, keyed by
// the issuer name used in the positions file. Built at startup and injected
// into the pipeline.
func Registry() map[string]baskets.Parser {
	return map[string]baskets.Parser{
		"iShares":     iShares{},
		"Vanguard":    vanguard{},
		"StateStreet": stateStreet{},
	}
}

// assetType maps an issuer's asset-class label to the canonical enum.
func assetType(label string) (baskets.AssetType, error) {
	switch label {
	case "Equity", "Stock":
		return baskets.Equity, nil
	case "Fixed Income", "Bond":
		return baskets.FixedIncome, nil
	case "Cash", "Money Market", "Cash Collateral and Margins", "Short-Term Reserves":
		return baskets.ShortTerm, nil
	}
	return "", fmt.Errorf("unknown asset class %q", label)
}
