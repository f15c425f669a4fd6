package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/quantfold/futures"
	"github.com/quantfold/futures/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	date  string
	level string
	watch int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the portfolio P&L report for a date" }
func (*reportCmd) Usage() string {
	return `frp report [-d <date>] [-l <level>] [-w n]

  Displays the positions, valuation and daily, month-to-date and
  year-to-date P&L of the account, aggregated by asset class,
  instrument or contract.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the report (defaults to today)")
	f.StringVar(&c.level, "l", "asset-class", "Aggregation level (asset-class, instrument, contract)")
	f.IntVar(&c.watch, "w", 0, "run every n seconds")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	on := futures.Today()
	if c.date != "" {
		var err error
		if on, err = futures.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	level, err := futures.ParseLevel(c.level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	account, err := loadAccount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for {
		report, err := account.Report(on, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.watch > 0 {
			fmt.Println("\033[2J")
		}
		printMarkdown(renderer.ReportMarkdown(report))

		if c.watch > 0 {
			time.Sleep(time.Duration(c.watch) * time.Second)
		} else {
			break
		}
	}
	return subcommands.ExitSuccess
}
