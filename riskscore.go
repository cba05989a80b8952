package tradelens

import "math"

// RiskSummary carries externally computed summary ratios, passed through
// unchanged from the caller. Use NaN for a ratio that was not computed;
// missing ratios score 0 so that partial reports still render.
type RiskSummary struct {
	Sharpe      float64
	Sortino     float64
	Calmar      float64
	Volatility  float64 // annualized, as a fraction (0.20 for 20%)
	MaxDrawdown float64 // as a fraction, typically negative
	WinRate     float64 // fraction of winning days, 0..1
}

// metricClass groups raw ratios by the normalization policy they share.
type metricClass int

const (
	// ratioMetric: risk-adjusted return ratios where 2.0 is excellent.
	ratioMetric metricClass = iota
	// volatilityMetric: dispersion figures where smaller is better.
	volatilityMetric
	// drawdownMetric: loss-from-peak figures where smaller magnitude is better.
	drawdownMetric
	// percentageMetric: 0..1 fractions mapped directly onto 0..100.
	percentageMetric
)

// Names of the normalized scores, usable as stable map keys by renderers.
const (
	ScoreSharpe      = "sharpe"
	ScoreSortino     = "sortino"
	ScoreCalmar      = "calmar"
	ScoreVolatility  = "volatility"
	ScoreMaxDrawdown = "max_drawdown"
	ScoreWinRate     = "win_rate"
)

// NormalizeRiskScores maps the raw, differently-scaled ratios of a RiskSummary
// onto a common 0-100 scale for side-by-side comparison. Every score is
// clamped to [0,100] regardless of input magnitude; NaN inputs score 0.
func NormalizeRiskScores(s RiskSummary) map[string]float64 {
	return map[string]float64{
		ScoreSharpe:      normalizeScore(ratioMetric, s.Sharpe),
		ScoreSortino:     normalizeScore(ratioMetric, s.Sortino),
		ScoreCalmar:      normalizeScore(ratioMetric, s.Calmar),
		ScoreVolatility:  normalizeScore(volatilityMetric, s.Volatility),
		ScoreMaxDrawdown: normalizeScore(drawdownMetric, s.MaxDrawdown),
		ScoreWinRate:     normalizeScore(percentageMetric, s.WinRate),
	}
}

// normalizeScore applies the policy of one metric class to one raw value.
func normalizeScore(class metricClass, value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	switch class {
	case ratioMetric:
		// a ratio of 2.0 or more saturates at 100
		return clamp(value * 50)
	case volatilityMetric, drawdownMetric:
		// lower magnitude scores higher; 50% or more saturates at 0
		return clamp(100 - math.Abs(value)*100*2)
	case percentageMetric:
		return clamp(value * 100)
	default:
		return 0
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
