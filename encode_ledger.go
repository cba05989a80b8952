package tradelens

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// moneyField is a specialized struct to read a monetary amount in two fields.
type moneyField struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a moneyField) Money() Money {
	return M(a.Amount, a.Currency)
}

// tradeLine is the decoding shape of one canonical ledger line.
type tradeLine struct {
	Instrument string     `json:"instrument"`
	Date       Date       `json:"date"`
	Side       string     `json:"side"`
	Quantity   Quantity   `json:"quantity"`
	Price      moneyField `json:"price"`
	Commission moneyField `json:"commission"`
	Tax        moneyField `json:"tax"`
}

// DecodeLedger decodes canonical trade records from a stream of JSONL data,
// one record per line, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	var records []TradeRecord
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var line tradeLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("could not decode trade record line %q: %w", string(lineBytes), err)
		}

		side, _ := ParseSide(line.Side)
		record := TradeRecord{
			Instrument: line.Instrument,
			Date:       line.Date,
			Side:       side,
			Quantity:   line.Quantity,
			Price:      line.Price.Money(),
			Commission: line.Commission.Money(),
			Tax:        line.Tax.Money(),
		}
		if err := record.validate(); err != nil {
			return nil, fmt.Errorf("invalid trade record %q: %w", string(lineBytes), err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.Append(records...)
	return ledger, nil
}

// EncodeTradeRecord marshals a single trade record to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTradeRecord(w io.Writer, t TradeRecord) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trade record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write trade record: %w", err)
	}
	return nil
}

// EncodeLedger persists trades to an io.Writer in JSONL format, in the
// ledger's canonical chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for t := range ledger.Trades() {
		if err := EncodeTradeRecord(w, t); err != nil {
			return err
		}
	}
	return nil
}
