package tradelens

// PositionState tracks the running holdings of a single instrument during a
// replay pass. It is owned exclusively by the matcher for the duration of one
// call; callers only ever see the resulting copies.
type PositionState struct {
	Held      Quantity // units currently held, never negative
	CostBasis Money    // total cost of currently held units, never negative
}

// AverageCost returns the blended cost per held unit, or zero money when
// nothing is held.
func (p PositionState) AverageCost() Money {
	if p.Held.IsZero() {
		return M(0, p.CostBasis.Currency())
	}
	return p.CostBasis.Div(p.Held)
}

// RealizedTradeOutcome is the profit or loss locked in by one sell.
type RealizedTradeOutcome struct {
	Instrument  string
	Date        Date
	RealizedPnL Money // sell proceeds net of commission and tax, minus matched cost basis
	// Unmatched marks a sell replayed against a zero holding (the ledger
	// started mid-position). Its P&L is zero by policy.
	Unmatched bool
}

// Win reports whether the outcome is a winning trade.
func (o RealizedTradeOutcome) Win() bool { return o.RealizedPnL.IsPositive() }

// MatchResult carries the outputs of one full cost-basis replay.
type MatchResult struct {
	Method CostBasisMethod
	// Outcomes holds one entry per sell, in ledger order.
	Outcomes []RealizedTradeOutcome
	// Positions holds the final state per instrument after the replay.
	Positions map[string]PositionState
	// UnmatchedCount counts sells that found no held quantity to match.
	UnmatchedCount int
}

// TotalRealizedPnL sums realized P&L over all outcomes.
func (r *MatchResult) TotalRealizedPnL() Money {
	var total Money
	for _, o := range r.Outcomes {
		total = total.Add(o.RealizedPnL)
	}
	return total
}

// MatchCostBasis replays the ledger in chronological order, maintaining one
// PositionState per instrument, and emits one RealizedTradeOutcome per sell.
//
// It never fails on an inconsistent ledger: a sell with nothing held becomes
// an unmatched zero-P&L outcome, a sell of more than is held closes the
// position and resets its state to exactly zero so that no rounding residue
// is carried forward, and no-op records are skipped entirely.
func MatchCostBasis(l *Ledger, method CostBasisMethod) *MatchResult {
	result := &MatchResult{
		Method:    method,
		Outcomes:  make([]RealizedTradeOutcome, 0),
		Positions: make(map[string]PositionState),
	}

	// FIFO keeps per-instrument lot queues alongside the aggregate state.
	var fifoLots map[string]lots
	if method == FIFO {
		fifoLots = make(map[string]lots)
	}

	for t := range l.Trades() {
		if t.IsNoOp() {
			continue
		}
		switch t.Side {
		case SideBuy:
			state := result.Positions[t.Instrument]
			state.Held = state.Held.Add(t.Quantity)
			state.CostBasis = state.CostBasis.Add(t.CostWithFees())
			result.Positions[t.Instrument] = state
			if method == FIFO {
				fifoLots[t.Instrument] = append(fifoLots[t.Instrument],
					lot{Date: t.Date, Quantity: t.Quantity, Cost: t.CostWithFees()})
			}

		case SideSell:
			state := result.Positions[t.Instrument]
			outcome := RealizedTradeOutcome{Instrument: t.Instrument, Date: t.Date}

			if state.Held.IsZero() {
				// ledger starts mid-position: nothing to match against
				outcome.Unmatched = true
				outcome.RealizedPnL = M(0, t.Price.Currency())
				result.UnmatchedCount++
				result.Outcomes = append(result.Outcomes, outcome)
				continue
			}

			var costOfSale Money
			switch method {
			case FIFO:
				costOfSale = fifoLots[t.Instrument].fifoCostOfSelling(t.Quantity)
				fifoLots[t.Instrument] = fifoLots[t.Instrument].sell(t.Quantity)
			default: // AverageCost
				costOfSale = state.AverageCost().Mul(t.Quantity)
			}
			outcome.RealizedPnL = t.NetProceeds().Sub(costOfSale)

			if t.Quantity.GreaterThanOrEqual(state.Held) {
				// full closure forces a clean reset
				state = PositionState{CostBasis: M(0, state.CostBasis.Currency())}
				if method == FIFO {
					fifoLots[t.Instrument] = nil
				}
			} else {
				state.Held = state.Held.Sub(t.Quantity)
				state.CostBasis = state.CostBasis.Sub(costOfSale)
			}
			result.Positions[t.Instrument] = state
			result.Outcomes = append(result.Outcomes, outcome)
		}
	}

	return result
}
