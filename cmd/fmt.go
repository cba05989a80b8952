package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradelens/tradelens"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "normalizes the raw trades file into canonical JSONL"
}
func (*fmtCmd) Usage() string {
	return `tlens fmt [-o <output_file>]

  Reads the raw trades file, canonicalizes every record (field aliases,
  date formats, side spellings) and writes the ledger back in chronological
  JSONL form. Records without an instrument identifier are dropped with a
  warning; unresolved sides are kept as inert records.

Usage Examples:
# Writes the canonical ledger to stdout.
$ tlens fmt

# Writes the canonical ledger to a file.
$ tlens fmt -o trades.canonical.jsonl
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Output file for the canonical ledger. Defaults to stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	raws, err := LoadRawTrades()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	result := tradelens.NormalizeTrades(raws, tradelens.NormalizeOptions{Currency: *defaultCurrency})

	out := os.Stdout
	if p.outputFile != "" {
		file, err := os.Create(p.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", p.outputFile, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	if err := tradelens.EncodeLedger(out, result.Ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing canonical ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(os.Stderr, "warning: %v\n", skipped)
	}
	if result.NoOpCount > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d records have no resolvable side and are excluded from matching\n", result.NoOpCount)
	}
	return subcommands.ExitSuccess
}
