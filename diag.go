package baskets

import "fmt"

// DiagKind classifies a pipeline diagnostic.
type DiagKind int

const (
	// LookupMiss: no parser registered for an issuer, or no stored file for a
	// ticker. The position is skipped and the run under-reports it.
	LookupMiss DiagKind = iota
	// HoldingsRejected: an issuer file parsed, but the resulting table failed
	// the holdings contract. The position is skipped.
	HoldingsRejected
	// WeightDrift: a holdings table's weights summed well away from 1.0 before
	// renormalization. Non-fatal, kept as an audit signal.
	WeightDrift
	// IdentityMissing: a row reached aggregation with every identifier column
	// empty. Its amount is excluded from the aggregate.
	IdentityMissing
)

func (k DiagKind) String() string {
	switch k {
	case LookupMiss:
		return "lookup-miss"
	case HoldingsRejected:
		return "holdings-rejected"
	case WeightDrift:
		return "weight-drift"
	case IdentityMissing:
		return "identity-missing"
	}
	return "unknown"
}

// Diagnostic is a structured, non-fatal finding from the pipeline or the
// aggregator. The core collects diagnostics instead of logging so that it
// stays free of I/O; the caller decides how to render them.
type Diagnostic struct {
	Kind   DiagKind
	Ticker string
	Issuer string
	Detail string
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Ticker != "" {
		s += " ticker=" + d.Ticker
	}
	if d.Issuer != "" {
		s += " issuer=" + d.Issuer
	}
	if d.Detail != "" {
		s += ": " + d.Detail
	}
	return s
}

// SchemaViolation reports a table that does not honor the holdings or
// positions contract: unexpected or missing columns, or an out-of-range value.
type SchemaViolation struct {
	Reason  string
	Columns []string
	Value   string
}

func (e *SchemaViolation) Error() string {
	s := e.Reason
	if len(e.Columns) > 0 {
		s += fmt.Sprintf(": %v", e.Columns)
	}
	if e.Value != "" {
		s += fmt.Sprintf(": %q", e.Value)
	}
	return s
}
