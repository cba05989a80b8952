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

type riskCmd struct{}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "display normalized 0-100 risk scores" }
func (*riskCmd) Usage() string {
	return `tlens risk -summary-file <file>

  Normalizes the externally computed summary ratios (sharpe, sortino, calmar,
  volatility, max drawdown, win rate) onto a common 0-100 scale.
`
}

func (*riskCmd) SetFlags(_ *flag.FlagSet) {}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := LoadRiskSummary()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RiskMarkdown(tradelens.NormalizeRiskScores(summary)))
	return subcommands.ExitSuccess
}
