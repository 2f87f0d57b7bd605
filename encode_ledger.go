package dividends

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/dividends/date"
)

// The ledger file is a JSONL stream: one object per line, each with a "type"
// property telling whether the line is a dividend or a holding. Dividends are
// written in chronological order followed by holdings in symbol order, so the
// file stays human readable and friendly to version control.

// Line types of the ledger file.
const (
	lineDividend = "dividend"
	lineHolding  = "holding"
)

// jdividend is the on-disk form of a DividendRecord.
type jdividend struct {
	Symbol         string            `json:"symbol"`
	Company        string            `json:"company,omitempty"`
	ExDate         date.Date         `json:"exDate"`
	PayDate        date.Date         `json:"payDate"`
	AmountPerShare Money             `json:"amountPerShare"`
	Shares         Quantity          `json:"shares"`
	Kind           DividendType      `json:"kind"`
	Tax            TaxClassification `json:"tax"`
}

// jholding is the on-disk form of a Holding.
type jholding struct {
	Symbol       string   `json:"symbol"`
	Shares       Quantity `json:"shares"`
	CostBasis    *Money   `json:"costBasis,omitempty"`
	CurrentYield *Rate    `json:"currentYield,omitempty"`
}

// DecodeLedger reads a ledger from a JSONL stream.
//
// Every line is validated through NewDividendRecord or NewHolding; the first
// invalid line aborts the decoding with its line number.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: not a correct json: %w", n, err)
		}

		switch identifier.Type {
		case lineDividend:
			var jd jdividend
			if err := json.Unmarshal(line, &jd); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			rec, err := NewDividendRecord(jd.Symbol, jd.ExDate, jd.PayDate, jd.AmountPerShare, jd.Shares,
				WithCompany(jd.Company), WithType(jd.Kind), WithTax(jd.Tax))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			// the file is the source of truth, duplicates it contains were forced in.
			ledger.records = append(ledger.records, rec)
		case lineHolding:
			var jh jholding
			if err := json.Unmarshal(line, &jh); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			h, err := NewHolding(jh.Symbol, jh.Shares, jh.CostBasis, jh.CurrentYield)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			ledger.holdings[h.Symbol] = h
		default:
			return nil, fmt.Errorf("line %d: unknown line type %q", n, identifier.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// EncodeDividend writes a single record as a JSON line.
func EncodeDividend(w io.Writer, rec DividendRecord) error {
	var o objectWriter
	o.Append("type", lineDividend).
		Append("symbol", rec.Symbol()).
		Optional("company", rec.Company()).
		Append("exDate", rec.ExDate()).
		Append("payDate", rec.PayDate()).
		Append("amountPerShare", rec.AmountPerShare()).
		Append("shares", rec.Shares()).
		Append("kind", rec.Type()).
		Append("tax", rec.Tax())
	return writeLine(w, &o)
}

// EncodeHolding writes a single holding as a JSON line.
func EncodeHolding(w io.Writer, h Holding) error {
	var o objectWriter
	o.Append("type", lineHolding).
		Append("symbol", h.Symbol).
		Append("shares", h.Shares).
		Optional("costBasis", h.CostBasis).
		Optional("currentYield", h.CurrentYield)
	return writeLine(w, &o)
}

func writeLine(w io.Writer, o *objectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger line: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger to w in JSONL format: records in
// chronological order, then holdings by symbol.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for rec := range ledger.Records() {
		if err := EncodeDividend(w, rec); err != nil {
			return err
		}
	}
	for h := range ledger.AllHoldings() {
		if err := EncodeHolding(w, h); err != nil {
			return err
		}
	}
	return nil
}
