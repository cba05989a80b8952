package tradelens

import (
	"sort"
)

// InsufficientDataWarning is a non-fatal advisory emitted when a computation
// had to fall back to a degraded but defined result.
type InsufficientDataWarning struct {
	Reason string
}

func (w InsufficientDataWarning) String() string { return w.Reason }

// positionCount is the number of concurrently held instruments after the last
// trade of one date.
type positionCount struct {
	on    Date
	count int
}

// PositionHistory is the replayed history of concurrent position counts. It
// is derived from the ledger alone; no position snapshot is ever persisted.
type PositionHistory struct {
	changes []positionCount // one entry per trading date, chronological
}

// ReconstructPositions replays the canonical ledger in a single forward pass,
// maintaining the set of instruments with a non-zero holding. An instrument
// joins the set on the buy that establishes a holding and leaves it on the
// sell that empties it.
func ReconstructPositions(l *Ledger) *PositionHistory {
	history := &PositionHistory{}

	held := make(map[string]Quantity) // instrument -> held quantity, zero entries removed
	for t := range l.Trades() {
		if t.IsNoOp() {
			continue
		}
		switch t.Side {
		case SideBuy:
			held[t.Instrument] = held[t.Instrument].Add(t.Quantity)
		case SideSell:
			q, ok := held[t.Instrument]
			if !ok {
				continue // unmatched sell cannot change the held set
			}
			q = q.Sub(t.Quantity)
			if q.IsPositive() {
				held[t.Instrument] = q
			} else {
				delete(held, t.Instrument)
			}
		default:
			continue
		}

		if n := len(history.changes); n > 0 && history.changes[n-1].on == t.Date {
			history.changes[n-1].count = len(held)
		} else {
			history.changes = append(history.changes, positionCount{on: t.Date, count: len(held)})
		}
	}

	return history
}

// CountOn returns the number of concurrently held instruments on a date:
// the count after the last trade on or before that date. Dates without
// trades inherit the most recent prior count; a date before the first trade
// has a count of zero.
func (h *PositionHistory) CountOn(on Date) int {
	i := sort.Search(len(h.changes), func(i int) bool {
		return h.changes[i].on.After(on)
	})
	if i == 0 {
		return 0
	}
	return h.changes[i-1].count
}

// Empty reports whether the history holds no trading dates at all.
func (h *PositionHistory) Empty() bool { return len(h.changes) == 0 }

// CountsByPeriod returns the position count at the end of each period of the
// given granularity in the range, keyed by the period's identifier.
func (h *PositionHistory) CountsByPeriod(r Range, p Period) map[string]int {
	counts := make(map[string]int)
	for span := range r.Periods(p) {
		counts[span.Identifier()] = h.CountOn(span.To)
	}
	return counts
}

// CountsByMonth returns the position count at the end of each month in the
// given range, keyed by the zero-padded "YYYY-MM" month key.
func (h *PositionHistory) CountsByMonth(r Range) map[string]int {
	return h.CountsByPeriod(r, Monthly)
}

// EstimatePositionCount derives a coarse position-count estimate from the
// portfolio valuation series alone. It is used when no trade data exists and
// is explicitly a lower-confidence heuristic, never a substitute for replay:
// a calmer portfolio is assumed to be more diversified, so the estimate steps
// down as annualized volatility rises.
func EstimatePositionCount(series *ValueSeries) (int, *InsufficientDataWarning) {
	warning := &InsufficientDataWarning{
		Reason: "no trade data: position count estimated from portfolio volatility alone",
	}
	if series == nil || series.Len() < 2 {
		return 0, warning
	}

	vol := series.AnnualizedVolatility()
	var estimate int
	switch {
	case vol >= 0.40:
		estimate = 2
	case vol >= 0.25:
		estimate = 4
	case vol >= 0.15:
		estimate = 6
	case vol > 0:
		estimate = 8
	default:
		estimate = 0
	}
	return estimate, warning
}
