package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/baskets"
)

type latestCmd struct{}

func (*latestCmd) Name() string     { return "latest" }
func (*latestCmd) Synopsis() string { return "show the newest stored file for a ticker" }
func (*latestCmd) Usage() string {
	return `bsk latest <ticker>

  Prints the path of the newest downloaded issuer file for the ticker, the
  one 'collect' would parse.
`
}

func (*latestCmd) SetFlags(*flag.FlagSet) {}

func (*latestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ticker")
		return subcommands.ExitUsageError
	}
	path, err := baskets.NewStore(*dbDir).Latest(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(path)
	return subcommands.ExitSuccess
}
