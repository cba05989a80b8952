package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradelens/tradelens/renderer"
)

type reportCmd struct {
	method string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full trade analytics report" }
func (*reportCmd) Usage() string {
	return `tlens report [-method <method>]

  Reconstructs the full analytics report from the raw trades file: realized
  P&L per sell, open holdings, concurrent position counts, drawdowns, risk
  scores and monthly aggregates.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "average", "Cost basis method (average, fifo)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
