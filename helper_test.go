package dividends

import (
	"testing"

	"github.com/etnz/dividends/date"
)

// USD is a helper for test to create money from const.
func USD(v float64) Money { return M(v) }

// div is a helper for test to create a valid dividend record paid on its ex-date.
func div(t *testing.T, symbol, exDate string, amountPerShare, shares float64, opts ...RecordOption) DividendRecord {
	t.Helper()
	d := date.MustParse(exDate)
	rec, err := NewDividendRecord(symbol, d, d.Add(7), M(amountPerShare), Q(shares), opts...)
	if err != nil {
		t.Fatalf("NewDividendRecord(%s, %s) error = %v", symbol, exDate, err)
	}
	return rec
}

// holding is a helper for test to create a holding with a cost basis.
func holding(t *testing.T, symbol string, shares, basis float64) Holding {
	t.Helper()
	b := M(basis)
	h, err := NewHolding(symbol, Q(shares), &b, nil)
	if err != nil {
		t.Fatalf("NewHolding(%s) error = %v", symbol, err)
	}
	return h
}

// newTestLedger builds a ledger from records, failing the test on duplicates.
func newTestLedger(t *testing.T, records ...DividendRecord) *Ledger {
	t.Helper()
	l := NewLedger()
	for _, rec := range records {
		if err := l.Add(rec, false); err != nil {
			t.Fatalf("Add(%v) error = %v", rec, err)
		}
	}
	return l
}

// appleMicrosoft is the two year, two symbol ledger used across analytics tests.
//
//	AAPL 2023: 24.00  2024: 25.00
//	MSFT 2023: 37.50  2024: 40.00
func appleMicrosoft(t *testing.T) *Ledger {
	t.Helper()
	return newTestLedger(t,
		div(t, "AAPL", "2023-02-10", 0.24, 100),
		div(t, "MSFT", "2023-02-15", 0.75, 50),
		div(t, "AAPL", "2024-02-09", 0.25, 100),
		div(t, "MSFT", "2024-02-14", 0.80, 50),
	)
}

// analyzer is a helper for test to create an analyzer with a fixed clock.
func analyzer(l *Ledger, today string) *Analyzer {
	a := NewAnalyzer(l, 0)
	a.Today = date.MustParse(today)
	return a
}

// rounded is a helper for test to compare rates at 4 decimal places.
func rounded(r Rate) string { return r.Decimal().StringFixed(4) }
