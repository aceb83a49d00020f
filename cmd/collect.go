package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/baskets"
	"github.com/ledgerline/baskets/issuers"
	"github.com/ledgerline/baskets/renderer"
)

// collectCmd holds the flags for the 'collect' subcommand.
type collectCmd struct {
	ignoreShorts  bool
	ignoreOptions bool
	fullTable     string
	aggTable      string
	tail          float64
}

func (*collectCmd) Name() string { return "collect" }
func (*collectCmd) Synopsis() string {
	return "resolve fund positions into consolidated look-through holdings"
}
func (*collectCmd) Usage() string {
	return `bsk collect [-l] [-o] [-F <path>] [-A <path>] [-tail <fraction>] <positions.csv>

  Resolves each fund position into its underlying constituent holdings using
  the newest downloaded issuer files, converts weights to dollar amounts, and
  prints the consolidated holdings table.
`
}

func (c *collectCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.ignoreShorts, "l", false, "Ignore short positions")
	f.BoolVar(&c.ignoreOptions, "o", false, "Ignore options positions")
	f.StringVar(&c.fullTable, "F", "", "Path to write the full per-fund-holding table to (CSV)")
	f.StringVar(&c.aggTable, "A", "", "Path to write the aggregated table to (CSV)")
	f.Float64Var(&c.tail, "tail", 0.98, "Cumulative fraction of value shown before the tail is folded")
}

func (c *collectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one positions file")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening positions file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	positions, err := baskets.ReadPositions(in, c.ignoreOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	pipeline := baskets.Pipeline{
		Store:        baskets.NewStore(*dbDir),
		Parsers:      issuers.Registry(),
		IgnoreShorts: c.ignoreShorts,
	}
	full, diags, err := pipeline.Run(positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	logDiagnostics(diags)

	total, err := baskets.Total(full)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error totaling holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	logrus.Infof("total amount from full holdings table: %.2f", total)

	if err := writeTable(c.fullTable, full); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing full table: %v\n", err)
		return subcommands.ExitFailure
	}

	agg, aggDiags, err := baskets.Group(full)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	logDiagnostics(aggDiags)

	if err := writeTable(c.aggTable, agg); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing aggregated table: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := renderer.AggregatedMarkdown(agg, c.tail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)

	return subcommands.ExitSuccess
}

// writeTable exports a table as CSV, or does nothing for an empty path.
func writeTable(path string, t baskets.Table) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return baskets.WriteCSV(f, t)
}
