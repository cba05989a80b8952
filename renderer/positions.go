package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/tradelens/tradelens"
)

// PositionsMarkdown renders the period-end concurrent position counts, or the
// volatility-derived estimate when no trade history exists. Keys sort
// chronologically whatever the period granularity.
func PositionsMarkdown(counts map[string]int, estimated int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	if len(counts) == 0 {
		doc.PlainText(fmt.Sprintf("No trade data: estimated %d concurrent positions from portfolio volatility.", estimated))
		return doc.String()
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Period", "Positions"},
		Rows:      [][]string{},
	}
	for _, key := range keys {
		table.Rows = append(table.Rows, []string{key, strconv.Itoa(counts[key])})
	}
	doc.Table(table)

	return doc.String()
}

// HoldingsMarkdown renders the final per-instrument position states after a
// cost basis replay.
func HoldingsMarkdown(positions map[string]tradelens.PositionState) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")

	instruments := make([]string, 0, len(positions))
	for instrument, state := range positions {
		if state.Held.IsZero() {
			continue
		}
		instruments = append(instruments, instrument)
	}
	if len(instruments) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}
	sort.Strings(instruments)

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Instrument", "Held", "Cost Basis", "Avg Cost"},
		Rows:      [][]string{},
	}
	for _, instrument := range instruments {
		state := positions[instrument]
		table.Rows = append(table.Rows, []string{
			instrument,
			state.Held.String(),
			state.CostBasis.String(),
			state.AverageCost().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
