package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/tradelens/tradelens"
)

// ReportMarkdown renders the complete analytics report: realized outcomes,
// open holdings, positions, drawdowns, risk scores and monthly aggregates.
func ReportMarkdown(r *tradelens.Report) string {
	var b strings.Builder

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Trade Analytics Report on %s", Now().Format("2006-01-02")))
	doc.PlainText(fmt.Sprintf("Cost basis method: %s", r.Method))
	b.WriteString(doc.String())

	ConditionalBlock(&b, func(w io.Writer) bool { return renderAdvisories(w, r) })
	ConditionalBlock(&b, func(w io.Writer) bool { return renderOutcomes(w, r) })

	b.WriteString("\n")
	b.WriteString(HoldingsMarkdown(r.Positions))
	b.WriteString("\n")
	b.WriteString(PositionsMarkdown(r.PositionCounts, r.EstimatedPositionCount))
	if len(r.Drawdowns) > 0 {
		b.WriteString("\n")
		b.WriteString(DrawdownMarkdown(r.Drawdowns))
	}
	b.WriteString("\n")
	b.WriteString(RiskMarkdown(r.RiskScores))
	b.WriteString("\n")
	b.WriteString(MonthlyMarkdown(r.Monthly))

	return b.String()
}

// renderAdvisories writes the degraded-input advisories, and reports whether
// anything was written.
func renderAdvisories(w io.Writer, r *tradelens.Report) bool {
	if r.SkippedCount == 0 && r.NoOpCount == 0 && r.UnmatchedCount == 0 && len(r.Warnings) == 0 {
		return false
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Advisories")

	var items []string
	if r.SkippedCount > 0 {
		items = append(items, fmt.Sprintf("%d raw records dropped (no instrument identifier)", r.SkippedCount))
	}
	if r.NoOpCount > 0 {
		items = append(items, fmt.Sprintf("%d records kept but excluded from matching (unresolved side)", r.NoOpCount))
	}
	if r.UnmatchedCount > 0 {
		items = append(items, fmt.Sprintf("%d sells settled at zero profit (no matching buy history)", r.UnmatchedCount))
	}
	for _, warning := range r.Warnings {
		items = append(items, warning.Reason)
	}
	doc.BulletList(items...)

	fmt.Fprint(w, doc.String())
	fmt.Fprintln(w)
	return true
}

// renderOutcomes writes the realized outcome table, and reports whether the
// report had any sells.
func renderOutcomes(w io.Writer, r *tradelens.Report) bool {
	if len(r.Outcomes) == 0 {
		return false
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Realized Trades")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Instrument", "Realized P&L", "Note"},
		Rows:      [][]string{},
	}
	for _, outcome := range r.Outcomes {
		note := ""
		if outcome.Unmatched {
			note = "unmatched"
		}
		table.Rows = append(table.Rows, []string{
			outcome.Date.String(),
			outcome.Instrument,
			outcome.RealizedPnL.SignedString(),
			note,
		})
	}
	doc.Table(table)

	fmt.Fprint(w, doc.String())
	fmt.Fprintln(w)
	return true
}
