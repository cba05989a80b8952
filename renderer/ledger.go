package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/tradelens/tradelens"
)

// LedgerMarkdown renders the canonical trade ledger in chronological order.
// No-op records are shown with an empty side so degraded inputs stay visible.
func LedgerMarkdown(l *tradelens.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trades")
	if l == nil || l.Len() == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Instrument", "Side", "Quantity", "Price", "Commission", "Tax"},
		Rows:   [][]string{},
	}
	for trade := range l.Trades() {
		table.Rows = append(table.Rows, []string{
			trade.Date.String(),
			trade.Instrument,
			string(trade.Side),
			trade.Quantity.String(),
			trade.Price.String(),
			trade.Commission.String(),
			trade.Tax.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
