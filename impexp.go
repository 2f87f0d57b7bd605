package dividends

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/dividends/date"
	log "github.com/sirupsen/logrus"
)

// This file contains the CSV import/export format. It is meant for
// spreadsheets and broker statements: a header line names the columns, in any
// order, and each following line is a dividend or a holding.

// Column names of the dividends CSV format.
var dividendColumns = []string{"symbol", "company", "ex_date", "pay_date", "amount_per_share", "shares", "type", "tax"}

// Column names of the holdings CSV format.
var holdingColumns = []string{"symbol", "shares", "cost_basis", "current_yield"}

// ImportResult counts what an import did to the ledger.
type ImportResult struct {
	Added   int
	Updated int
	Skipped int
}

func (r ImportResult) String() string {
	return fmt.Sprintf("%d added, %d updated, %d skipped", r.Added, r.Updated, r.Skipped)
}

// csvTable is a decoded CSV file with named columns.
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing csv header", ErrInvalidParameter)
	}
	t := &csvTable{index: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("%w: missing csv column %q", ErrInvalidParameter, name)
		}
	}
	return t, nil
}

// get returns the trimmed cell of column name, empty if the column or the cell is missing.
func (t *csvTable) get(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ImportDividendsCSV reads dividend records from r and adds them to the ledger.
//
// Columns symbol, ex_date, pay_date, amount_per_share and shares are required;
// company, type and tax are optional. Every line is validated before the
// ledger is modified, so an invalid file leaves it unchanged.
//
// A record whose (symbol, ex-date) is already in the ledger is skipped, unless
// force is set in which case the existing record is replaced.
func ImportDividendsCSV(r io.Reader, l *Ledger, force bool) (ImportResult, error) {
	var res ImportResult
	t, err := readCSV(r, "symbol", "ex_date", "pay_date", "amount_per_share", "shares")
	if err != nil {
		return res, err
	}

	records := make([]DividendRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2 // header is line 1
		rec, err := t.dividend(row)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	res = l.Merge(records, force)
	log.Infof("imported dividends: %v", res)
	return res, nil
}

func (t *csvTable) dividend(row []string) (DividendRecord, error) {
	exDate, err := date.Parse(t.get(row, "ex_date"))
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: invalid ex_date: %v", ErrInvalidRecord, err)
	}
	payDate, err := date.Parse(t.get(row, "pay_date"))
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: invalid pay_date: %v", ErrInvalidRecord, err)
	}
	amount, err := ParseMoney(t.get(row, "amount_per_share"))
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: invalid amount_per_share: %v", ErrInvalidRecord, err)
	}
	shares, err := ParseQuantity(t.get(row, "shares"))
	if err != nil {
		return DividendRecord{}, fmt.Errorf("%w: invalid shares: %v", ErrInvalidRecord, err)
	}
	kind, err := ParseDividendType(t.get(row, "type"))
	if err != nil {
		return DividendRecord{}, err
	}
	tax, err := ParseTaxClassification(t.get(row, "tax"))
	if err != nil {
		return DividendRecord{}, err
	}
	return NewDividendRecord(t.get(row, "symbol"), exDate, payDate, amount, shares,
		WithCompany(t.get(row, "company")), WithType(kind), WithTax(tax))
}

// ExportDividendsCSV writes the ledger records to w in chronological order.
func ExportDividendsCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dividendColumns); err != nil {
		return err
	}
	for rec := range l.Records() {
		row := []string{
			rec.Symbol(),
			rec.Company(),
			rec.ExDate().String(),
			rec.PayDate().String(),
			rec.AmountPerShare().Exact(),
			rec.Shares().String(),
			rec.Type().String(),
			rec.Tax().String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportHoldingsCSV reads holdings from r and upserts them in the ledger.
//
// Columns symbol and shares are required. current_yield is a percentage, the
// "%" suffix is optional. An empty or zero cost_basis or current_yield means
// the value is unknown.
func ImportHoldingsCSV(r io.Reader, l *Ledger) (ImportResult, error) {
	var res ImportResult
	t, err := readCSV(r, "symbol", "shares")
	if err != nil {
		return res, err
	}

	holdings := make([]Holding, 0, len(t.rows))
	for i, row := range t.rows {
		h, err := t.holding(row)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", i+2, err)
		}
		holdings = append(holdings, h)
	}
	for _, h := range holdings {
		if l.UpsertHolding(h) {
			res.Updated++
		} else {
			res.Added++
		}
	}
	log.Infof("imported holdings: %v", res)
	return res, nil
}

func (t *csvTable) holding(row []string) (Holding, error) {
	shares, err := ParseQuantity(t.get(row, "shares"))
	if err != nil {
		return Holding{}, fmt.Errorf("%w: invalid shares: %v", ErrInvalidRecord, err)
	}
	var basis *Money
	if s := t.get(row, "cost_basis"); s != "" {
		m, err := ParseMoney(s)
		if err != nil {
			return Holding{}, fmt.Errorf("%w: invalid cost_basis: %v", ErrInvalidRecord, err)
		}
		if !m.IsZero() {
			basis = &m
		}
	}
	var yield *Rate
	if s := t.get(row, "current_yield"); s != "" {
		y, err := ParsePercent(s)
		if err != nil {
			return Holding{}, fmt.Errorf("%w: invalid current_yield: %v", ErrInvalidRecord, err)
		}
		if !y.IsZero() {
			yield = &y
		}
	}
	return NewHolding(t.get(row, "symbol"), shares, basis, yield)
}

// ExportHoldingsCSV writes the holdings to w in symbol order.
func ExportHoldingsCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(holdingColumns); err != nil {
		return err
	}
	for h := range l.AllHoldings() {
		basis, yield := "", ""
		if h.CostBasis != nil {
			basis = h.CostBasis.Exact()
		}
		if h.CurrentYield != nil {
			yield = h.CurrentYield.Percent().String()
		}
		if err := cw.Write([]string{h.Symbol, h.Shares.String(), basis, yield}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
