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

type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the canonical trade ledger" }
func (*tradesCmd) Usage() string {
	return `tlens trades

  Normalizes the raw trades file and displays the resulting canonical ledger
  in chronological order, with the normalization advisories.
`
}

func (*tradesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	raws, err := LoadRawTrades()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	result := tradelens.NormalizeTrades(raws, tradelens.NormalizeOptions{Currency: *defaultCurrency})

	printMarkdown(renderer.LedgerMarkdown(result.Ledger))
	if n := result.SkippedCount(); n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d raw records dropped (no instrument identifier)\n", n)
	}
	if result.NoOpCount > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d records excluded from matching (unresolved side)\n", result.NoOpCount)
	}
	return subcommands.ExitSuccess
}
