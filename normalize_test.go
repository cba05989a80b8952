package tradelens

import (
	"testing"
)

func TestNormalizeTrades(t *testing.T) {
	t.Run("field aliases resolve to canonical fields", func(t *testing.T) {
		raws := []RawTradeRecord{
			{"symbol": "2330.TW", "trade_date": "2025-01-10", "action": "BUY", "shares": 100.0, "deal_price": 10.0, "fee": 1.0},
			{"ticker": "AAPL", "date": "2025-01-12", "direction": "sold", "qty": "50", "price": "12.5", "brokerage": "0.5", "stamp_duty": "0.1"},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		if result.SkippedCount() != 0 {
			t.Fatalf("skipped %d records, want 0", result.SkippedCount())
		}
		if result.Ledger.Len() != 2 {
			t.Fatalf("ledger has %d trades, want 2", result.Ledger.Len())
		}

		var trades []TradeRecord
		for trade := range result.Ledger.Trades() {
			trades = append(trades, trade)
		}

		first := trades[0]
		if first.Instrument != "2330.TW" || first.Side != SideBuy {
			t.Errorf("first trade = %+v, want buy of 2330.TW", first)
		}
		if !first.Quantity.Equal(Q(100)) || !first.Price.Equal(M(10, "USD")) {
			t.Errorf("first trade quantity/price = %s/%s, want 100/10", first.Quantity, first.Price)
		}
		if !first.Commission.Equal(M(1, "USD")) {
			t.Errorf("first trade commission = %s, want 1", first.Commission)
		}

		second := trades[1]
		if second.Instrument != "AAPL" || second.Side != SideSell {
			t.Errorf("second trade = %+v, want sell of AAPL", second)
		}
		// numeric strings coerce like numbers
		if !second.Quantity.Equal(Q(50)) || !second.Price.Equal(M(12.5, "USD")) {
			t.Errorf("second trade quantity/price = %s/%s, want 50/12.5", second.Quantity, second.Price)
		}
		if !second.Tax.Equal(M(0.1, "USD")) {
			t.Errorf("second trade tax = %s, want 0.1", second.Tax)
		}
	})

	t.Run("alias priority", func(t *testing.T) {
		// instrument_id wins over symbol, side wins over action
		raws := []RawTradeRecord{
			{"instrument_id": "TSM", "symbol": "2330.TW", "side": "buy", "action": "sell", "date": "2025-01-10", "quantity": 10.0, "price": 5.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		for trade := range result.Ledger.Trades() {
			if trade.Instrument != "TSM" {
				t.Errorf("instrument = %q, want %q", trade.Instrument, "TSM")
			}
			if trade.Side != SideBuy {
				t.Errorf("side = %q, want %q", trade.Side, SideBuy)
			}
		}
	})

	t.Run("negative quantity means sell", func(t *testing.T) {
		raws := []RawTradeRecord{
			{"symbol": "AAPL", "date": "2025-01-10", "quantity": -30.0, "price": 12.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		for trade := range result.Ledger.Trades() {
			if trade.Side != SideSell {
				t.Errorf("side = %q, want %q", trade.Side, SideSell)
			}
			if !trade.Quantity.Equal(Q(30)) {
				t.Errorf("quantity = %s, want 30", trade.Quantity)
			}
		}
		if result.NoOpCount != 0 {
			t.Errorf("no-op count = %d, want 0", result.NoOpCount)
		}
	})

	t.Run("unix timestamps", func(t *testing.T) {
		raws := []RawTradeRecord{
			// 2025-01-10T00:00:00Z in seconds
			{"symbol": "A", "timestamp": 1736467200.0, "side": "buy", "quantity": 1.0, "price": 1.0},
			// the same instant in milliseconds
			{"symbol": "B", "timestamp": 1736467200000.0, "side": "buy", "quantity": 1.0, "price": 1.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		for trade := range result.Ledger.Trades() {
			if want := NewDate(2025, 1, 10); trade.Date != want {
				t.Errorf("trade %s date = %s, want %s", trade.Instrument, trade.Date, want)
			}
		}
	})

	t.Run("missing instrument drops the record", func(t *testing.T) {
		raws := []RawTradeRecord{
			{"date": "2025-01-10", "side": "buy", "quantity": 10.0, "price": 5.0},
			{"symbol": "AAPL", "date": "2025-01-11", "side": "buy", "quantity": 10.0, "price": 5.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		if result.SkippedCount() != 1 {
			t.Fatalf("skipped %d records, want 1", result.SkippedCount())
		}
		if result.Skipped[0].Index != 0 {
			t.Errorf("skipped index = %d, want 0", result.Skipped[0].Index)
		}
		if result.Ledger.Len() != 1 {
			t.Errorf("ledger has %d trades, want 1", result.Ledger.Len())
		}
	})

	t.Run("unresolvable side becomes a no-op record", func(t *testing.T) {
		raws := []RawTradeRecord{
			{"symbol": "AAPL", "date": "2025-01-10", "side": "transfer", "quantity": 10.0, "price": 5.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		if result.NoOpCount != 1 {
			t.Errorf("no-op count = %d, want 1", result.NoOpCount)
		}
		// the record stays in the ledger for audit
		if result.Ledger.Len() != 1 {
			t.Errorf("ledger has %d trades, want 1", result.Ledger.Len())
		}
		for trade := range result.Ledger.Trades() {
			if !trade.IsNoOp() {
				t.Errorf("trade %+v should be a no-op", trade)
			}
		}
	})

	t.Run("zero quantity becomes a no-op record", func(t *testing.T) {
		raws := []RawTradeRecord{
			{"symbol": "AAPL", "date": "2025-01-10", "side": "buy", "quantity": 0.0, "price": 5.0},
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		if result.NoOpCount != 1 {
			t.Errorf("no-op count = %d, want 1", result.NoOpCount)
		}
	})

	t.Run("parses raw trades from an array or jsonl", func(t *testing.T) {
		array := []byte(`[{"symbol":"AAPL","qty":10},{"symbol":"MSFT","qty":5}]`)
		raws, err := ParseRawTrades(array)
		if err != nil {
			t.Fatalf("ParseRawTrades(array) = %v", err)
		}
		if len(raws) != 2 {
			t.Fatalf("got %d records, want 2", len(raws))
		}

		jsonl := []byte("{\"symbol\":\"AAPL\",\"qty\":10}\n\n{\"symbol\":\"MSFT\",\"qty\":5}\n")
		raws, err = ParseRawTrades(jsonl)
		if err != nil {
			t.Fatalf("ParseRawTrades(jsonl) = %v", err)
		}
		if len(raws) != 2 {
			t.Fatalf("got %d records, want 2", len(raws))
		}
		if raws[1]["symbol"] != "MSFT" {
			t.Errorf("second record symbol = %v, want MSFT", raws[1]["symbol"])
		}

		if raws, err := ParseRawTrades(nil); err != nil || raws != nil {
			t.Errorf("ParseRawTrades(nil) = %v, %v, want nil, nil", raws, err)
		}

		if _, err := ParseRawTrades([]byte("not json")); err == nil {
			t.Error("ParseRawTrades should reject malformed input")
		}
	})

	t.Run("never fails on garbage", func(t *testing.T) {
		raws := []RawTradeRecord{
			{},
			{"symbol": 42.0},
			{"symbol": "A", "date": "not a date", "side": "buy", "quantity": 1.0, "price": 1.0},
			nil,
		}
		result := NormalizeTrades(raws, NormalizeOptions{Currency: "USD"})
		// first two and the nil record have no usable instrument
		if result.SkippedCount() != 3 {
			t.Errorf("skipped %d records, want 3", result.SkippedCount())
		}
		// the bad date record survives with a zero date
		if result.Ledger.Len() != 1 {
			t.Errorf("ledger has %d trades, want 1", result.Ledger.Len())
		}
	})
}
