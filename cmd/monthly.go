package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradelens/tradelens/renderer"
)

type monthlyCmd struct {
	method string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the monthly performance report" }
func (*monthlyCmd) Usage() string {
	return `tlens monthly [-method <method>]

  Displays the calendar-month aggregates: return, trade count, win rate,
  trading days and the heuristic volatility and drawdown proxies.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "average", "Cost basis method (average, fifo)")
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := parseMethod(c.method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	report, err := analyze(method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MonthlyMarkdown(report.Monthly))
	return subcommands.ExitSuccess
}
