// Package renderer renders baskets reports to markdown strings, ready to be
// printed through a terminal markdown renderer.
package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/ledgerline/baskets"
)

// AggregatedMarkdown renders the consolidated holdings table as a markdown
// report, truncated at the cumulative tail threshold: only the leading rows
// whose running total stays strictly under total×tail are shown, the rest is
// folded into a single remainder line.
func AggregatedMarkdown(agg baskets.Table, tail float64) (string, error) {
	amounts, err := agg.Floats("amount")
	if err != nil {
		return "", err
	}
	total, err := baskets.Total(agg)
	if err != nil {
		return "", err
	}
	head := agg.Head(baskets.HeadSize(amounts, tail))

	var b strings.Builder
	fmt.Fprintf(&b, "# Consolidated Holdings\n\n")
	fmt.Fprintf(&b, "Total exposure: %s across %d securities.\n\n", usd(total), agg.Len())
	fmt.Fprintln(&b, "| Security | Class | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	shown := 0.0
	for row := range head.Rows() {
		shown += row.Float("amount")
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			row.String("id"),
			row.String("asstype"),
			usd(row.Float("amount")),
		)
	}
	if rest := agg.Len() - head.Len(); rest > 0 {
		fmt.Fprintf(&b, "| *%d smaller positions* | | %s |\n", rest, usd(total-shown))
	}
	return b.String(), nil
}

func usd(amount float64) string {
	cents := math.Round(amount * 100)
	// a pathological aggregate (NaN, ±Inf, beyond int64 cents) is printed
	// raw rather than silently wrapped through the int64 conversion
	if math.IsNaN(cents) || cents >= math.MaxInt64 || cents <= math.MinInt64 {
		return fmt.Sprintf("USD %g", amount)
	}
	return money.New(int64(cents), money.USD).Display()
}
