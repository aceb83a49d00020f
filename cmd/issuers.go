package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/google/subcommands"

	"github.com/ledgerline/baskets/issuers"
)

type issuersCmd struct{}

func (*issuersCmd) Name() string     { return "issuers" }
func (*issuersCmd) Synopsis() string { return "list the issuers with a registered holdings parser" }
func (*issuersCmd) Usage() string {
	return `bsk issuers

  Lists the issuer names accepted in the positions file. Positions from any
  other issuer are skipped with a diagnostic.
`
}

func (*issuersCmd) SetFlags(*flag.FlagSet) {}

func (*issuersCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	registry := issuers.Registry()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}
