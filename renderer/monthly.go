package renderer

import (
	"bytes"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/tradelens/tradelens"
)

// MonthlyMarkdown renders the calendar-month aggregates as a markdown table,
// one row per month in chronological order.
func MonthlyMarkdown(buckets []tradelens.MonthlyBucket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Performance")
	if len(buckets) == 0 {
		doc.PlainText("No monthly data available.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Month", "Return", "Trades", "Win Rate", "Trading Days", "Est. Volatility", "Est. Max Drawdown"},
		Rows:   [][]string{},
	}
	for _, b := range buckets {
		days := strconv.Itoa(b.TradingDays)
		if b.AssumedTradingDays {
			days += " (assumed)"
		}
		table.Rows = append(table.Rows, []string{
			b.Key,
			percent(b.Return),
			strconv.Itoa(b.TradeCount),
			unsignedPercent(b.WinRate),
			days,
			unsignedPercent(b.EstimatedVolatility),
			tradelens.Percent(b.EstimatedMaxDrawdown * 100).String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
