package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/quantfold/futures"
)

type checkCmd struct{}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "validates the referential integrity of the account tables"
}
func (*checkCmd) Usage() string {
	return `frp check

  Loads the account CSV tables and verifies that every contract refers
  to a known instrument, that every trade refers to a known contract,
  and that every traded contract has a price series. A report can only
  be produced from tables that pass this check.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tables, err := futures.LoadDir(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load account data: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tables.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ account data in %q is consistent: %d instruments, %d contracts, %d trades\n",
		*dataDir, len(tables.Instruments()), len(tables.Contracts()), len(tables.Trades()))
	return subcommands.ExitSuccess
}
