package tradelens

import (
	"time"
)

// Options configures a full analysis run.
type Options struct {
	// Method selects the cost basis matching method. Zero value is
	// AverageCost.
	Method CostBasisMethod
	// Currency is applied to monetary fields during normalization.
	Currency string
	// AssumedTradingDays is the fallback trading-day count for monthly
	// buckets. Zero means DefaultAssumedTradingDays.
	AssumedTradingDays int
}

// Report is the complete reconstructed analytics for one account: realized
// outcomes, position history, drawdowns, normalized risk scores and monthly
// aggregates, plus the advisory counts accumulated along the way.
type Report struct {
	Generated time.Time
	Method    CostBasisMethod
	Currency  string

	Outcomes  []RealizedTradeOutcome
	Positions map[string]PositionState

	// PositionCounts maps month keys to the concurrent position count held at
	// the end of that month. Empty when the ledger had no usable trades.
	PositionCounts map[string]int
	// EstimatedPositionCount is the volatility-derived estimate used when no
	// trade history is available.
	EstimatedPositionCount int

	Drawdowns  []DrawdownPoint
	Deepest    DrawdownPoint
	RiskScores map[string]float64
	Monthly    []MonthlyBucket

	SkippedCount   int
	NoOpCount      int
	UnmatchedCount int
	Warnings       []InsufficientDataWarning
}

// Analyze normalizes raw trade records and reconstructs the full analytics
// report. It never fails: degraded inputs produce a report with warnings and
// advisory counts instead of an error.
func Analyze(raws []RawTradeRecord, series *ValueSeries, summary RiskSummary, opts Options) *Report {
	normalized := NormalizeTrades(raws, NormalizeOptions{Currency: opts.Currency})

	report := AnalyzeLedger(normalized.Ledger, series, summary, opts)
	report.SkippedCount = normalized.SkippedCount()
	report.NoOpCount = normalized.NoOpCount
	return report
}

// AnalyzeLedger reconstructs the full analytics report from an already
// canonical ledger.
func AnalyzeLedger(ledger *Ledger, series *ValueSeries, summary RiskSummary, opts Options) *Report {
	report := &Report{
		Generated:  time.Now(),
		Method:     opts.Method,
		Currency:   opts.Currency,
		RiskScores: NormalizeRiskScores(summary),
	}

	match := MatchCostBasis(ledger, opts.Method)
	report.Outcomes = match.Outcomes
	report.Positions = match.Positions
	report.UnmatchedCount = match.UnmatchedCount
	if match.UnmatchedCount > 0 {
		report.Warnings = append(report.Warnings, InsufficientDataWarning{
			Reason: "sell records without matching buy history were settled at zero profit",
		})
	}

	history := ReconstructPositions(ledger)
	if history.Empty() {
		estimate, warning := EstimatePositionCount(series)
		report.EstimatedPositionCount = estimate
		if warning != nil {
			report.Warnings = append(report.Warnings, *warning)
		}
		report.PositionCounts = map[string]int{}
	} else {
		report.PositionCounts = history.CountsByMonth(monthSpan(ledger, series))
	}

	if series != nil {
		report.Drawdowns = Drawdowns(series)
		if deepest, ok := MaxDrawdown(report.Drawdowns); ok {
			report.Deepest = deepest
		}
	}

	var returns map[string]float64
	if series != nil {
		returns = series.MonthlyReturns()
	}
	var tradeDates []Date
	for trade := range ledger.Trades() {
		if !trade.IsNoOp() {
			tradeDates = append(tradeDates, trade.Date)
		}
	}
	report.Monthly = AggregateMonthly(tradeDates, report.Outcomes, returns, MonthlyOptions{
		AssumedTradingDays: opts.AssumedTradingDays,
	})
	for _, bucket := range report.Monthly {
		if bucket.AssumedTradingDays {
			report.Warnings = append(report.Warnings, InsufficientDataWarning{
				Reason: "month " + bucket.Key + " has value history but no trades; trading days assumed",
			})
		}
	}
	return report
}

// monthSpan widens the ledger's range to cover the value series, so monthly
// position counts line up with monthly returns.
func monthSpan(ledger *Ledger, series *ValueSeries) Range {
	r, _ := ledger.Range()
	if series != nil {
		for _, point := range series.Points() {
			if r.From.IsZero() || point.Date.Before(r.From) {
				r.From = point.Date
			}
			if r.To.IsZero() || point.Date.After(r.To) {
				r.To = point.Date
			}
		}
	}
	return r
}
