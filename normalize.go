package tradelens

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// RawTradeRecord is a trade record in whatever shape the caller has: field
// names vary between brokers and export formats, and no particular schema is
// assumed.
type RawTradeRecord = map[string]any

// MalformedRecordError reports a raw record that could not be canonicalized
// because no usable instrument identifier was found under any known alias.
// It is advisory: malformed records are dropped, never fatal.
type MalformedRecordError struct {
	Index int // position of the record in the raw input
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("raw trade record %d has no resolvable instrument identifier", e.Index)
}

// Alias tables, one per canonical field. For each record the first present
// alias wins; order therefore resolves the "which field name wins" ambiguity
// in exactly one place.
var (
	instrumentAliases = []string{"$.instrument_id", "$.symbol", "$.ticker", "$.instrument", "$.code", "$.stock_code", "$.security"}
	dateAliases       = []string{"$.timestamp", "$.date", "$.trade_date", "$.datetime", "$.time"}
	sideAliases       = []string{"$.side", "$.action", "$.order_type", "$.direction", "$.type"}
	quantityAliases   = []string{"$.quantity", "$.shares", "$.qty", "$.volume", "$.units"}
	priceAliases      = []string{"$.price", "$.unit_price", "$.deal_price", "$.avg_price"}
	commissionAliases = []string{"$.commission", "$.fee", "$.fees", "$.brokerage"}
	taxAliases        = []string{"$.transaction_tax", "$.tax", "$.stamp_duty"}
)

// ParseRawTrades decodes raw trade records from bytes. It accepts either a
// single JSON array of objects or JSONL, one object per line.
func ParseRawTrades(data []byte) ([]RawTradeRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raws []RawTradeRecord
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("could not decode raw trades array: %w", err)
		}
		return raws, nil
	}

	var raws []RawTradeRecord
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var raw RawTradeRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("could not decode raw trade line %q: %w", string(line), err)
		}
		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading raw trades: %w", err)
	}
	return raws, nil
}

// NormalizeOptions configures normalization.
type NormalizeOptions struct {
	// Currency is applied to all monetary fields. Raw ledgers in scope carry
	// no currency of their own.
	Currency string
}

// NormalizeResult carries the canonical ledger and the normalization
// advisories.
type NormalizeResult struct {
	Ledger *Ledger
	// Skipped lists records dropped for having no instrument identifier.
	Skipped []*MalformedRecordError
	// NoOpCount counts records kept in the ledger but excluded from matching
	// because their side could not be resolved.
	NoOpCount int
}

// SkippedCount returns the number of dropped raw records.
func (r *NormalizeResult) SkippedCount() int { return len(r.Skipped) }

// NormalizeTrades canonicalizes raw heterogeneous trade records into a
// chronologically ordered Ledger. It never fails: records without an
// instrument identifier are dropped and reported in the result, records
// without a resolvable side become no-op records, and every other missing
// field defaults to zero.
func NormalizeTrades(raws []RawTradeRecord, opts NormalizeOptions) *NormalizeResult {
	result := &NormalizeResult{Ledger: NewLedger()}

	records := make([]TradeRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := normalizeRecord(raw, opts.Currency)
		if err != nil {
			result.Skipped = append(result.Skipped, &MalformedRecordError{Index: i})
			continue
		}
		if record.IsNoOp() {
			result.NoOpCount++
		}
		records = append(records, record)
	}
	result.Ledger.Append(records...)
	return result
}

// normalizeRecord canonicalizes a single raw record. The only hard
// requirement is a usable instrument identifier.
func normalizeRecord(raw RawTradeRecord, currency string) (TradeRecord, error) {
	instrument, ok := resolveString(raw, instrumentAliases)
	if !ok || instrument == "" {
		return TradeRecord{}, fmt.Errorf("no instrument identifier")
	}

	record := TradeRecord{
		Instrument: instrument,
		Price:      M(0, currency),
		Commission: M(0, currency),
		Tax:        M(0, currency),
	}

	if s, ok := resolveString(raw, sideAliases); ok {
		record.Side, _ = ParseSide(s)
	}
	if d, ok := resolveDate(raw, dateAliases); ok {
		record.Date = d
	}
	if q, ok := resolveNumber(raw, quantityAliases); ok {
		// a negative raw quantity is another spelling of a sell
		if q.IsNegative() && record.Side == sideNone {
			record.Side = SideSell
		}
		record.Quantity = Q(q.Abs())
	}
	if p, ok := resolveNumber(raw, priceAliases); ok {
		record.Price = M(p.Abs(), currency)
	}
	if c, ok := resolveNumber(raw, commissionAliases); ok {
		record.Commission = M(c.Abs(), currency)
	}
	if t, ok := resolveNumber(raw, taxAliases); ok {
		record.Tax = M(t.Abs(), currency)
	}

	// a buy or sell of nothing is not actionable
	if record.Quantity.IsZero() {
		record.Side = sideNone
	}

	if err := record.validate(); err != nil {
		return TradeRecord{}, err
	}
	return record, nil
}

// resolve returns the first value present under the ordered alias paths.
func resolve(raw RawTradeRecord, aliases []string) (any, bool) {
	for _, path := range aliases {
		v, err := jsonpath.Get(path, any(raw))
		if err != nil || v == nil {
			continue
		}
		return v, true
	}
	return nil, false
}

func resolveString(raw RawTradeRecord, aliases []string) (string, bool) {
	v, ok := resolve(raw, aliases)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

// resolveNumber coerces JSON numbers, numeric strings and integers.
func resolveNumber(raw RawTradeRecord, aliases []string) (decimal.Decimal, bool) {
	v, ok := resolve(raw, aliases)
	if !ok {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// resolveDate accepts date strings in the supported formats and unix
// timestamps (seconds or milliseconds).
func resolveDate(raw RawTradeRecord, aliases []string) (Date, bool) {
	v, ok := resolve(raw, aliases)
	if !ok {
		return Date{}, false
	}
	switch d := v.(type) {
	case string:
		on, err := ParseDate(d)
		return on, err == nil
	case float64:
		return dateFromUnix(int64(d)), true
	case int64:
		return dateFromUnix(d), true
	case json.Number:
		if i, err := d.Int64(); err == nil {
			return dateFromUnix(i), true
		}
		return Date{}, false
	default:
		return Date{}, false
	}
}

func dateFromUnix(ts int64) Date {
	// values above 1e12 can only be milliseconds
	if ts > 1_000_000_000_000 {
		ts /= 1000
	}
	return NewDate(time.Unix(ts, 0).UTC().Date())
}
