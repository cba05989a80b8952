package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tradelens/tradelens/cmd"
)

func main() {
	// Shell completion runs and exits before the commander when invoked by
	// the completion hook.
	completion().Complete("tlens")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	methodFlag := map[string]complete.Predictor{
		"method": predict.Set{"average", "fifo"},
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"trades-file":  predict.Files("*.json"),
			"series-file":  predict.Files("*.json"),
			"summary-file": predict.Files("*.json"),
			"currency":     predict.Set{"USD", "EUR", "TWD", "JPY", "GBP"},
		},
		Sub: map[string]*complete.Command{
			"report":    {Flags: methodFlag},
			"monthly":   {Flags: methodFlag},
			"drawdown":  {},
			"positions": {Flags: map[string]complete.Predictor{
				"period": predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
			}},
			"risk":      {},
			"trades":    {},
			"fmt":       {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}},
			"topic":     {Args: predict.Set{"readme", "dates", "methods", "scores", "monthly"}},
			"assist":    {},
		},
	}
}
