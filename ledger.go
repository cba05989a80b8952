package tradelens

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Side is the direction of a trade.
type Side string

const (
	// SideBuy buys quantity of an instrument.
	SideBuy Side = "buy"
	// SideSell sells quantity of an instrument.
	SideSell Side = "sell"
	// sideNone marks a record whose direction could not be resolved. Such
	// records stay in the ledger for audit but are never offered to matching.
	sideNone Side = ""
)

// ParseSide parses a trade direction from its many raw spellings.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "b", "bought", "long", "open":
		return SideBuy, true
	case "sell", "s", "sold", "short", "close":
		return SideSell, true
	default:
		return sideNone, false
	}
}

// TradeRecord is a single canonical trade. It is created once by
// normalization and immutable thereafter.
type TradeRecord struct {
	Instrument string   // resolved instrument identifier, never empty
	Date       Date     // trade date
	Side       Side     // buy or sell; empty when unresolved
	Quantity   Quantity // number of units, positive
	Price      Money    // unit price
	Commission Money    // broker commission, non-negative
	Tax        Money    // transaction tax, non-negative

	seq int // original ledger position, tie-break for same-day trades
}

// IsNoOp reports whether the record carries no resolvable direction and must
// not be offered to matching.
func (t TradeRecord) IsNoOp() bool { return t.Side == sideNone }

// GrossAmount returns quantity times unit price.
func (t TradeRecord) GrossAmount() Money { return t.Price.Mul(t.Quantity) }

// NetProceeds returns the cash received by a sell after commission and tax.
// For a buy it is the gross amount; commissions on buys are part of the cost
// basis, not of proceeds.
func (t TradeRecord) NetProceeds() Money {
	if t.Side == SideSell {
		return t.GrossAmount().Sub(t.Commission).Sub(t.Tax)
	}
	return t.GrossAmount()
}

// CostWithFees returns the total acquisition cost of a buy: gross amount plus
// commission.
func (t TradeRecord) CostWithFees() Money {
	return t.GrossAmount().Add(t.Commission)
}

// Equal reports whether two records are the same trade, ignoring the ledger
// position.
func (t TradeRecord) Equal(o TradeRecord) bool {
	return t.Instrument == o.Instrument &&
		t.Date == o.Date &&
		t.Side == o.Side &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Commission.Equal(o.Commission) &&
		t.Tax.Equal(o.Tax)
}

// MarshalJSON implements the json.Marshaler interface for TradeRecord.
func (t TradeRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("instrument", t.Instrument)
	w.Append("date", t.Date)
	w.Optional("side", string(t.Side))
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	if !t.Commission.IsZero() {
		w.Append("commission", t.Commission)
	}
	if !t.Tax.IsZero() {
		w.Append("tax", t.Tax)
	}
	return w.MarshalJSON()
}

// Ledger is a list of canonical trades.
//
// In a Ledger trades are always in chronological order: date ascending, and
// for same-day trades, original arrival order.
type Ledger struct {
	trades []TradeRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{trades: make([]TradeRecord, 0)}
}

// Append appends trades to this ledger and maintains the chronological order.
func (l *Ledger) Append(trades ...TradeRecord) {
	for _, t := range trades {
		t.seq = len(l.trades)
		l.trades = append(l.trades, t)
	}
	l.stableSort()
}

// stableSort sorts trades by date ascending, same-day trades by original
// ledger position.
func (l *Ledger) stableSort() {
	sort.Slice(l.trades, func(i, j int) bool {
		if l.trades[i].Date != l.trades[j].Date {
			return l.trades[i].Date.Before(l.trades[j].Date)
		}
		return l.trades[i].seq < l.trades[j].seq
	})
}

// Len returns the number of trades in the ledger, no-op records included.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns an iterator over trades in chronological order.
func (l *Ledger) Trades() iter.Seq[TradeRecord] {
	return func(yield func(TradeRecord) bool) {
		for _, t := range l.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// TradesOn returns an iterator over trades up to and including a date.
func (l *Ledger) TradesOn(on Date) iter.Seq[TradeRecord] {
	return func(yield func(TradeRecord) bool) {
		for _, t := range l.trades {
			if t.Date.After(on) {
				break
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Instruments returns an iterator over distinct instrument identifiers in
// order of first appearance.
func (l *Ledger) Instruments() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, t := range l.trades {
			if _, ok := seen[t.Instrument]; ok {
				continue
			}
			seen[t.Instrument] = struct{}{}
			if !yield(t.Instrument) {
				return
			}
		}
	}
}

// Range returns the date range covered by the ledger, and false when the
// ledger is empty.
func (l *Ledger) Range() (Range, bool) {
	if len(l.trades) == 0 {
		return Range{}, false
	}
	return NewRange(l.trades[0].Date, l.trades[len(l.trades)-1].Date), true
}

// validate checks ledger-level invariants of a single record. It is called by
// normalization; a canonical ledger built by this package always passes.
func (t TradeRecord) validate() error {
	if t.Instrument == "" {
		return fmt.Errorf("trade record has no instrument identifier")
	}
	if !t.IsNoOp() && !t.Quantity.IsPositive() {
		return fmt.Errorf("trade record for %q has non-positive quantity %s", t.Instrument, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("trade record for %q has negative price %s", t.Instrument, t.Price)
	}
	return nil
}
