// Package cmd implements the CLI application to analyze trade ledgers.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/tradelens/tradelens"
)

// Register the subcommands.
// A main package calls Register() to allow subcommands, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
	c.Register(&drawdownCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")
	c.Register(&riskCmd{}, "reports")
	c.Register(&tradesCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.

var tradesFile = flag.String("trades-file", "trades.json", "Path to the raw trade records file (JSON array or JSONL)")
var seriesFile = flag.String("series-file", "", "Path to the portfolio valuation series file (JSON)")
var summaryFile = flag.String("summary-file", "", "Path to the risk summary ratios file (JSON)")
var defaultCurrency = flag.String("currency", "USD", "Currency applied to monetary fields during normalization")

// LoadRawTrades reads raw heterogeneous trade records from the app trades
// file. It accepts either a single JSON array of objects or JSONL, one object
// per line. A missing file is an empty input, not an error.
func LoadRawTrades() ([]tradelens.RawTradeRecord, error) {
	data, err := os.ReadFile(*tradesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, trades file %q does not exist, analyzing an empty ledger instead", *tradesFile)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read trades file %q: %w", *tradesFile, err)
	}
	return tradelens.ParseRawTrades(data)
}

// seriesInput is the decoding shape of the valuation series file: two
// parallel arrays as collaborators produce them.
type seriesInput struct {
	Timestamps []string  `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// LoadSeries reads the portfolio valuation series from the app series file.
// An unset or missing file yields a nil series.
func LoadSeries() (*tradelens.ValueSeries, error) {
	if *seriesFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(*seriesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, series file %q does not exist, skipping drawdown analysis", *seriesFile)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read series file %q: %w", *seriesFile, err)
	}

	var input seriesInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("could not decode series file %q: %w", *seriesFile, err)
	}
	dates := make([]tradelens.Date, len(input.Timestamps))
	for i, ts := range input.Timestamps {
		on, err := tradelens.ParseDate(ts)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp in series file %q: %w", *seriesFile, err)
		}
		dates[i] = on
	}
	return tradelens.NewValueSeries(dates, input.Values)
}

// LoadRiskSummary reads the externally computed summary ratios from the app
// summary file. An unset or missing file yields a zero summary.
func LoadRiskSummary() (tradelens.RiskSummary, error) {
	var summary tradelens.RiskSummary
	if *summaryFile == "" {
		return summary, nil
	}
	data, err := os.ReadFile(*summaryFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, summary file %q does not exist, risk scores default to 0", *summaryFile)
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("could not read summary file %q: %w", *summaryFile, err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("could not decode summary file %q: %w", *summaryFile, err)
	}
	return summary, nil
}

// analyze runs the full pipeline with the shared app inputs.
func analyze(method tradelens.CostBasisMethod) (*tradelens.Report, error) {
	raws, err := LoadRawTrades()
	if err != nil {
		return nil, err
	}
	series, err := LoadSeries()
	if err != nil {
		return nil, err
	}
	summary, err := LoadRiskSummary()
	if err != nil {
		return nil, err
	}
	return tradelens.Analyze(raws, series, summary, tradelens.Options{
		Method:   method,
		Currency: *defaultCurrency,
	}), nil
}

// parseMethod parses the per-command cost basis method flag.
func parseMethod(method string) (tradelens.CostBasisMethod, error) {
	if method == "" {
		return tradelens.AverageCost, nil
	}
	return tradelens.ParseCostBasisMethod(method)
}
