package tradelens

import (
	"reflect"
	"testing"
)

func TestAnalyze(t *testing.T) {
	raws := []RawTradeRecord{
		{"symbol": "2330.TW", "date": "2025-01-10", "action": "buy", "shares": 100.0, "price": 10.0, "fee": 1.0},
		{"symbol": "2330.TW", "date": "2025-02-20", "action": "sell", "shares": 100.0, "price": 12.0, "fee": 1.0, "transaction_tax": 1.0},
		{"date": "2025-01-11", "action": "buy", "shares": 10.0, "price": 1.0}, // no instrument, dropped
		{"symbol": "0050.TW", "date": "2025-01-15", "shares": 50.0, "price": 20.0},
	}
	series := mustSeries(t,
		[]Date{NewDate(2025, 1, 10), NewDate(2025, 1, 31), NewDate(2025, 2, 15), NewDate(2025, 2, 28)},
		[]float64{1000, 1100, 950, 1050})

	report := Analyze(raws, series, RiskSummary{Sharpe: 1.2, WinRate: 0.6}, Options{Currency: "TWD"})

	if report.SkippedCount != 1 {
		t.Errorf("skipped count = %d, want 1", report.SkippedCount)
	}
	if report.NoOpCount != 1 {
		t.Errorf("no-op count = %d, want 1", report.NoOpCount)
	}
	if report.UnmatchedCount != 0 {
		t.Errorf("unmatched count = %d, want 0", report.UnmatchedCount)
	}

	if len(report.Outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(report.Outcomes))
	}
	if want := M(197, "TWD"); !report.Outcomes[0].RealizedPnL.Equal(want) {
		t.Errorf("realized P&L = %s, want %s", report.Outcomes[0].RealizedPnL, want)
	}

	// January: the buy is the only resolvable trade, one position held.
	// February: the sell closes it.
	wantCounts := map[string]int{"2025-01": 1, "2025-02": 0}
	if !reflect.DeepEqual(report.PositionCounts, wantCounts) {
		t.Errorf("position counts = %v, want %v", report.PositionCounts, wantCounts)
	}

	if len(report.Drawdowns) != series.Len() {
		t.Errorf("got %d drawdown points, want %d", len(report.Drawdowns), series.Len())
	}
	if !approx(report.Deepest.Drawdown, 950.0/1100.0-1) {
		t.Errorf("deepest drawdown = %v, want %v", report.Deepest.Drawdown, 950.0/1100.0-1)
	}

	if got := report.RiskScores[ScoreSharpe]; !approx(got, 60) {
		t.Errorf("sharpe score = %v, want 60", got)
	}

	if len(report.Monthly) != 2 {
		t.Fatalf("got %d monthly buckets, want 2", len(report.Monthly))
	}
	if report.Monthly[0].Key != "2025-01" || report.Monthly[1].Key != "2025-02" {
		t.Errorf("monthly keys = %q,%q, want 2025-01,2025-02", report.Monthly[0].Key, report.Monthly[1].Key)
	}
}

func TestAnalyze_NoTrades(t *testing.T) {
	series := mustSeries(t,
		[]Date{NewDate(2025, 1, 1), NewDate(2025, 1, 2), NewDate(2025, 1, 3), NewDate(2025, 1, 4)},
		[]float64{100, 100.2, 100.1, 100.3})

	report := Analyze(nil, series, RiskSummary{}, Options{Currency: "USD"})

	if len(report.PositionCounts) != 0 {
		t.Errorf("position counts = %v, want empty", report.PositionCounts)
	}
	// a quiet series estimates a broad book
	if report.EstimatedPositionCount != 8 {
		t.Errorf("estimated position count = %d, want 8", report.EstimatedPositionCount)
	}
	if len(report.Warnings) == 0 {
		t.Errorf("expected warnings on the estimated path")
	}
}

func TestAnalyze_NoSeries(t *testing.T) {
	raws := []RawTradeRecord{
		{"symbol": "A", "date": "2025-01-10", "side": "buy", "quantity": 10.0, "price": 5.0},
		{"symbol": "A", "date": "2025-01-20", "side": "sell", "quantity": 10.0, "price": 6.0},
	}
	report := Analyze(raws, nil, RiskSummary{}, Options{Currency: "USD"})

	if len(report.Outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(report.Outcomes))
	}
	if len(report.Drawdowns) != 0 {
		t.Errorf("got %d drawdown points, want 0", len(report.Drawdowns))
	}
	if want := map[string]int{"2025-01": 0}; !reflect.DeepEqual(report.PositionCounts, want) {
		t.Errorf("position counts = %v, want %v", report.PositionCounts, want)
	}
	// trades without returns still bucket
	if len(report.Monthly) != 1 || report.Monthly[0].TradeCount != 1 {
		t.Errorf("monthly = %+v, want one bucket with one trade", report.Monthly)
	}
}

func TestAnalyzeLedger_BuyOnlyMonthBuckets(t *testing.T) {
	l := NewLedger()
	l.Append(
		TradeRecord{Instrument: "A", Date: NewDate(2025, 1, 5), Side: SideBuy, Quantity: Q(10), Price: M(5, "USD")},
		TradeRecord{Instrument: "A", Date: NewDate(2025, 2, 10), Side: SideSell, Quantity: Q(10), Price: M(6, "USD")},
	)
	report := AnalyzeLedger(l, nil, RiskSummary{}, Options{Currency: "USD"})

	if len(report.Monthly) != 2 {
		t.Fatalf("got %d monthly buckets, want 2: %+v", len(report.Monthly), report.Monthly)
	}
	// the buy-only month buckets with its observed trading day
	january := report.Monthly[0]
	if january.Key != "2025-01" {
		t.Fatalf("first bucket key = %q, want 2025-01", january.Key)
	}
	if january.TradingDays != 1 || january.AssumedTradingDays {
		t.Errorf("january trading days = %d (assumed=%v), want 1 observed",
			january.TradingDays, january.AssumedTradingDays)
	}
	if january.TradeCount != 0 {
		t.Errorf("january trade count = %d, want 0 sells", january.TradeCount)
	}
	if report.Monthly[1].TradingDays != 1 || report.Monthly[1].TradeCount != 1 {
		t.Errorf("february = %+v, want 1 trading day and 1 sell", report.Monthly[1])
	}
	// observed months never warn about assumed trading days
	for _, w := range report.Warnings {
		t.Errorf("unexpected warning: %s", w.Reason)
	}
}

func TestAnalyze_UnmatchedWarning(t *testing.T) {
	raws := []RawTradeRecord{
		{"symbol": "A", "date": "2025-01-10", "side": "sell", "quantity": 10.0, "price": 5.0},
	}
	report := Analyze(raws, nil, RiskSummary{}, Options{Currency: "USD"})
	if report.UnmatchedCount != 1 {
		t.Errorf("unmatched count = %d, want 1", report.UnmatchedCount)
	}
	if len(report.Warnings) == 0 {
		t.Errorf("expected a warning for the unmatched sell")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	raws := []RawTradeRecord{
		{"symbol": "A", "date": "2025-01-10", "side": "buy", "quantity": 100.0, "price": 10.0},
		{"symbol": "A", "date": "2025-01-20", "side": "sell", "quantity": 40.0, "price": 12.0},
	}
	series := mustSeries(t,
		[]Date{NewDate(2025, 1, 10), NewDate(2025, 1, 20)},
		[]float64{1000, 1080})

	first := Analyze(raws, series, RiskSummary{Sharpe: 1}, Options{Currency: "USD"})
	second := Analyze(raws, series, RiskSummary{Sharpe: 1}, Options{Currency: "USD"})

	if len(first.Outcomes) != len(second.Outcomes) {
		t.Fatalf("outcome counts differ between identical runs")
	}
	for i := range first.Outcomes {
		if !first.Outcomes[i].RealizedPnL.Equal(second.Outcomes[i].RealizedPnL) {
			t.Errorf("outcome %d differs between identical runs", i)
		}
	}
	if !reflect.DeepEqual(first.PositionCounts, second.PositionCounts) {
		t.Errorf("position counts differ between identical runs")
	}
	if !reflect.DeepEqual(first.Monthly, second.Monthly) {
		t.Errorf("monthly buckets differ between identical runs")
	}
}
