package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/tradelens/tradelens"
)

func stableNow(t *testing.T) {
	t.Helper()
	old := Now
	Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { Now = old })
}

func TestMonthlyMarkdown(t *testing.T) {
	buckets := []tradelens.MonthlyBucket{
		{Key: "2024-12", Return: 0.05, TradeCount: 3, WinRate: 2.0 / 3.0, TradingDays: 2},
		{Key: "2025-01", Return: -0.02, TradingDays: 20, AssumedTradingDays: true},
	}
	got := MonthlyMarkdown(buckets)

	for _, want := range []string{
		"# Monthly Performance",
		"2024-12",
		"+5.00%",
		"2025-01",
		"-2.00%",
		"20 (assumed)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// december sorts before january in the rendered order
	if strings.Index(got, "2024-12") > strings.Index(got, "2025-01") {
		t.Errorf("months rendered out of order:\n%s", got)
	}
}

func TestMonthlyMarkdown_Empty(t *testing.T) {
	got := MonthlyMarkdown(nil)
	if !strings.Contains(got, "No monthly data") {
		t.Errorf("output missing empty notice:\n%s", got)
	}
}

func TestDrawdownMarkdown(t *testing.T) {
	series, err := tradelens.NewValueSeries(
		[]tradelens.Date{
			tradelens.NewDate(2025, 1, 1),
			tradelens.NewDate(2025, 1, 2),
			tradelens.NewDate(2025, 1, 3),
		},
		[]float64{100, 120, 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := DrawdownMarkdown(tradelens.Drawdowns(series))

	for _, want := range []string{"# Drawdown Analysis", "Max drawdown: -25.00% on 2025-01-03", "120.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPositionsMarkdown(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		got := PositionsMarkdown(map[string]int{"2025-01": 2, "2024-12": 1}, 0)
		if !strings.Contains(got, "2024-12") || !strings.Contains(got, "2025-01") {
			t.Errorf("output missing months:\n%s", got)
		}
		if strings.Index(got, "2024-12") > strings.Index(got, "2025-01") {
			t.Errorf("months rendered out of order:\n%s", got)
		}
	})

	t.Run("estimated", func(t *testing.T) {
		got := PositionsMarkdown(nil, 6)
		if !strings.Contains(got, "estimated 6 concurrent positions") {
			t.Errorf("output missing estimate notice:\n%s", got)
		}
	})
}

func TestRiskMarkdown(t *testing.T) {
	got := RiskMarkdown(map[string]float64{"sharpe": 60, "win_rate": 55})
	for _, want := range []string{"# Risk Scores", "Sharpe", "60", "Win Rate", "55"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestLedgerMarkdown(t *testing.T) {
	l := tradelens.NewLedger()
	l.Append(tradelens.TradeRecord{
		Instrument: "2330.TW",
		Date:       tradelens.NewDate(2025, 1, 10),
		Side:       tradelens.SideBuy,
		Quantity:   tradelens.Q(100),
		Price:      tradelens.M(10, "TWD"),
	})
	got := LedgerMarkdown(l)
	for _, want := range []string{"# Trades", "2330.TW", "buy", "2025-01-10"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	stableNow(t)

	raws := []tradelens.RawTradeRecord{
		{"symbol": "2330.TW", "date": "2025-01-10", "side": "buy", "quantity": 100.0, "price": 10.0, "fee": 1.0},
		{"symbol": "2330.TW", "date": "2025-02-20", "side": "sell", "quantity": 100.0, "price": 12.0, "fee": 1.0, "tax": 1.0},
		{"date": "2025-01-11", "side": "buy", "quantity": 1.0, "price": 1.0},
	}
	report := tradelens.Analyze(raws, nil, tradelens.RiskSummary{Sharpe: 1.2}, tradelens.Options{Currency: "TWD"})
	got := ReportMarkdown(report)

	for _, want := range []string{
		"# Trade Analytics Report on 2025-03-01",
		"Cost basis method: average",
		"## Advisories",
		"1 raw records dropped",
		"## Realized Trades",
		"2330.TW",
		"# Risk Scores",
		"# Monthly Performance",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
