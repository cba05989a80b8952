package tradelens

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// tradingDaysPerYear is the conventional annualization factor for daily data.
const tradingDaysPerYear = 252

// ValuePoint is one portfolio valuation on one trading day.
type ValuePoint struct {
	Date  Date
	Value float64
}

// ValueSeries is a chronologically ordered portfolio valuation series, one
// point per trading day.
type ValueSeries struct {
	points []ValuePoint
}

// NewValueSeries builds a series from the parallel timestamp and value arrays
// supplied by collaborators. The arrays must have the same length; the series
// is sorted by date.
func NewValueSeries(dates []Date, values []float64) (*ValueSeries, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("parallel series arrays differ in length: %d dates, %d values", len(dates), len(values))
	}
	points := make([]ValuePoint, len(dates))
	for i := range dates {
		points[i] = ValuePoint{Date: dates[i], Value: values[i]}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return &ValueSeries{points: points}, nil
}

// Len returns the number of points in the series.
func (s *ValueSeries) Len() int { return len(s.points) }

// Points returns the ordered points of the series.
func (s *ValueSeries) Points() []ValuePoint { return s.points }

// DailyReturns returns the simple day-over-day returns of the series. Days
// following a zero valuation yield a zero return rather than a division by
// zero.
func (s *ValueSeries) DailyReturns() []float64 {
	if len(s.points) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(s.points)-1)
	for i := 1; i < len(s.points); i++ {
		prev := s.points[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, s.points[i].Value/prev-1)
	}
	return returns
}

// AnnualizedVolatility estimates the annualized volatility of the series as
// the sample standard deviation of daily returns scaled by sqrt(252). A
// series shorter than three points has no meaningful dispersion and yields 0.
func (s *ValueSeries) AnnualizedVolatility() float64 {
	returns := s.DailyReturns()
	if len(returns) < 2 {
		return 0
	}
	sd := stat.StdDev(returns, nil)
	if math.IsNaN(sd) {
		return 0
	}
	return sd * math.Sqrt(tradingDaysPerYear)
}

// MonthlyReturns returns the return of each calendar month covered by the
// series, keyed by "YYYY-MM". A month's return compares its last valuation to
// the last valuation of the preceding month; the first month compares to its
// own first valuation.
func (s *ValueSeries) MonthlyReturns() map[string]float64 {
	returns := make(map[string]float64)
	if len(s.points) == 0 {
		return returns
	}

	// last valuation per month, in series order
	lastOfMonth := make(map[string]float64)
	var keys []string
	for _, p := range s.points {
		key := p.Date.MonthKey()
		if _, ok := lastOfMonth[key]; !ok {
			keys = append(keys, key)
		}
		lastOfMonth[key] = p.Value
	}

	base := s.points[0].Value
	for _, key := range keys {
		end := lastOfMonth[key]
		if base != 0 {
			returns[key] = end/base - 1
		} else {
			returns[key] = 0
		}
		base = end
	}
	return returns
}

// MeanDailyReturn returns the arithmetic mean of daily returns, or 0 for a
// degenerate series.
func (s *ValueSeries) MeanDailyReturn() float64 {
	returns := s.DailyReturns()
	if len(returns) == 0 {
		return 0
	}
	return stat.Mean(returns, nil)
}
