package tradelens

// DrawdownPoint is one step of the running-peak scan over the portfolio
// valuation series.
type DrawdownPoint struct {
	Date  Date
	Value float64
	// Peak is the maximum of all valuations up to and including this point.
	// It is monotonically non-decreasing across the series.
	Peak float64
	// Drawdown is Value/Peak - 1, expressed as a fraction and always <= 0.
	// It is exactly 0 whenever Value equals Peak.
	Drawdown float64
}

// Drawdowns computes the drawdown series in a single left-to-right scan.
// Degenerate input (nil, empty or single-point series) yields an empty or
// zero-drawdown result, never an error.
func Drawdowns(series *ValueSeries) []DrawdownPoint {
	if series == nil || series.Len() == 0 {
		return nil
	}

	points := series.Points()
	result := make([]DrawdownPoint, 0, len(points))
	peak := points[0].Value
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
		dd := 0.0
		if peak != 0 && p.Value != peak {
			dd = p.Value/peak - 1
		}
		result = append(result, DrawdownPoint{Date: p.Date, Value: p.Value, Peak: peak, Drawdown: dd})
	}
	return result
}

// MaxDrawdown returns the deepest point of a drawdown series. Ties resolve to
// the earliest occurrence. The second return value is false for an empty
// series.
func MaxDrawdown(points []DrawdownPoint) (DrawdownPoint, bool) {
	if len(points) == 0 {
		return DrawdownPoint{}, false
	}
	deepest := points[0]
	for _, p := range points[1:] {
		if p.Drawdown < deepest.Drawdown {
			deepest = p
		}
	}
	return deepest, true
}
