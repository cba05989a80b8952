package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradelens/tradelens"
	"github.com/tradelens/tradelens/renderer"
)

type drawdownCmd struct{}

func (*drawdownCmd) Name() string     { return "drawdown" }
func (*drawdownCmd) Synopsis() string { return "display the running peak and drawdown series" }
func (*drawdownCmd) Usage() string {
	return `tlens drawdown -series-file <file>

  Computes the running peak and drawdown of the portfolio valuation series,
  and reports the deepest point.
`
}

func (*drawdownCmd) SetFlags(_ *flag.FlagSet) {}

func (c *drawdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if series == nil {
		fmt.Fprintln(os.Stderr, "a series file is required, use -series-file")
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.DrawdownMarkdown(tradelens.Drawdowns(series)))
	return subcommands.ExitSuccess
}
