// Package cmd implements the CLI application to report on a futures account.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/quantfold/futures"
)

// Commands lists the subcommands in registration order.
// A main package registers each one on its commander and Execute()s
// the user-selected one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&checkCmd{},
	&serveCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".", "Path to the folder containing the account CSV tables")

// loadAccount loads and validates the account tables from the app data folder.
func loadAccount() (*futures.Account, error) {
	tables, err := futures.LoadDir(*dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading account data from %q: %w", *dataDir, err)
	}
	return futures.NewAccount(tables)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
