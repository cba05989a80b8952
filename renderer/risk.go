package renderer

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"
)

// riskScoreLabels maps stable score keys to display labels.
var riskScoreLabels = map[string]string{
	"sharpe":       "Sharpe",
	"sortino":      "Sortino",
	"calmar":       "Calmar",
	"volatility":   "Volatility",
	"max_drawdown": "Max Drawdown",
	"win_rate":     "Win Rate",
}

// RiskMarkdown renders the normalized 0-100 risk scores as a markdown table.
func RiskMarkdown(scores map[string]float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Risk Scores")
	doc.PlainText("All scores are normalized to a 0-100 scale, higher is better.")

	keys := make([]string, 0, len(scores))
	for key := range scores {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Score"},
		Rows:      [][]string{},
	}
	for _, key := range keys {
		label := riskScoreLabels[key]
		if label == "" {
			label = key
		}
		table.Rows = append(table.Rows, []string{label, fmt.Sprintf("%.0f", scores[key])})
	}
	doc.Table(table)

	return doc.String()
}
