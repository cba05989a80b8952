package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tradelens/tradelens"
)

// DrawdownMarkdown renders the drawdown series and its deepest point.
func DrawdownMarkdown(points []tradelens.DrawdownPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Drawdown Analysis")
	if len(points) == 0 {
		doc.PlainText("No valuation data available.")
		return doc.String()
	}

	if deepest, ok := tradelens.MaxDrawdown(points); ok {
		doc.PlainText(fmt.Sprintf("Max drawdown: %s on %s (peak %.2f, trough %.2f)",
			percent(deepest.Drawdown), deepest.Date, deepest.Peak, deepest.Value))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Peak", "Drawdown"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			fmt.Sprintf("%.2f", p.Value),
			fmt.Sprintf("%.2f", p.Peak),
			percent(p.Drawdown),
		})
	}
	doc.Table(table)

	return doc.String()
}
