package dividends

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/dividends/date"
	"github.com/google/go-cmp/cmp"
)

func keys(records []DividendRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Key().String())
	}
	return out
}

func TestLedger_AddKeepsChronologicalOrder(t *testing.T) {
	l := newTestLedger(t,
		div(t, "MSFT", "2024-02-14", 0.80, 50),
		div(t, "aapl", "2024-02-14", 0.25, 100),
		div(t, "AAPL", "2023-02-10", 0.24, 100),
	)
	got := keys(slices.Collect(l.Records()))
	want := []string{"AAPL@2023-02-10", "AAPL@2024-02-14", "MSFT@2024-02-14"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_AddDuplicate(t *testing.T) {
	l := newTestLedger(t, div(t, "AAPL", "2024-02-09", 0.25, 100))
	before := l.Revision()

	err := l.Add(div(t, "AAPL", "2024-02-09", 0.30, 10), false)
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("Add() error = %v, want ErrDuplicateRecord", err)
	}
	if l.Revision() != before || l.Len() != 1 {
		t.Errorf("rejected Add() changed the ledger")
	}

	if err := l.Add(div(t, "AAPL", "2024-02-09", 0.30, 10), true); err != nil {
		t.Fatalf("forced Add() error = %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	// forced duplicates keep their insertion order.
	recs := l.RecordsFor("AAPL")
	if !recs[0].Total().Equal(USD(25)) || !recs[1].Total().Equal(USD(3)) {
		t.Errorf("forced duplicates out of order: %v", recs)
	}
}

func TestLedger_ReplaceAndRemove(t *testing.T) {
	l := appleMicrosoft(t)

	if err := l.Replace(div(t, "AAPL", "2024-02-09", 0.26, 100)); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got := l.RecordsIn(2024)[0].Total(); !got.Equal(USD(26)) {
		t.Errorf("after Replace() total = %v, want 26", got)
	}
	if err := l.Replace(div(t, "AAPL", "2022-02-09", 0.26, 100)); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Replace(unknown) error = %v, want ErrRecordNotFound", err)
	}

	n, err := l.Remove("msft", date.MustParse("2023-02-15"))
	if err != nil || n != 1 {
		t.Fatalf("Remove() = %d, %v", n, err)
	}
	if _, err := l.Remove("MSFT", date.MustParse("2023-02-15")); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second Remove() error = %v, want ErrRecordNotFound", err)
	}
	if got, want := l.Len(), 3; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestLedger_Holdings(t *testing.T) {
	l := NewLedger()
	if replaced := l.UpsertHolding(holding(t, "AAPL", 100, 150)); replaced {
		t.Error("UpsertHolding() on a new symbol reported a replacement")
	}
	if replaced := l.UpsertHolding(holding(t, "AAPL", 120, 150)); !replaced {
		t.Error("UpsertHolding() on an existing symbol did not report a replacement")
	}
	h, ok := l.Holding("aapl")
	if !ok || !h.Shares.Equal(Q(120)) {
		t.Errorf("Holding(aapl) = %v, %v", h, ok)
	}

	// Holdings returns a copy.
	hs := l.Holdings()
	delete(hs, "AAPL")
	if _, ok := l.Holding("AAPL"); !ok {
		t.Error("deleting from Holdings() result modified the ledger")
	}

	if err := l.RemoveHolding("AAPL"); err != nil {
		t.Fatalf("RemoveHolding() error = %v", err)
	}
	if err := l.RemoveHolding("AAPL"); !errors.Is(err, ErrHoldingNotFound) {
		t.Errorf("RemoveHolding(missing) error = %v, want ErrHoldingNotFound", err)
	}
}

func TestLedger_Filters(t *testing.T) {
	l := appleMicrosoft(t)

	tests := []struct {
		name    string
		filters []func(DividendRecord) bool
		want    int
	}{
		{"all", nil, 4},
		{"by symbol", []func(DividendRecord) bool{BySymbol("msft")}, 2},
		{"by year", []func(DividendRecord) bool{ByYear(2023)}, 2},
		{"by symbol and year", []func(DividendRecord) bool{BySymbol("AAPL"), ByYear(2024)}, 1},
		{"by range", []func(DividendRecord) bool{ByRange(date.NewRange(date.MustParse("2024-02-01"), date.Monthly))}, 2},
		{"by tax", []func(DividendRecord) bool{ByTax(Qualified)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := len(slices.Collect(l.Records(tt.filters...)))
			if got != tt.want {
				t.Errorf("Records() returned %d records, want %d", got, tt.want)
			}
		})
	}

	if diff := cmp.Diff([]int{2023, 2024}, l.Years()); diff != "" {
		t.Errorf("Years() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"AAPL", "MSFT"}, l.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_Revision(t *testing.T) {
	l := NewLedger()
	r0 := l.Revision()
	if err := l.Add(div(t, "KO", "2024-03-14", 0.485, 10), false); err != nil {
		t.Fatal(err)
	}
	r1 := l.Revision()
	l.UpsertHolding(holding(t, "KO", 10, 60))
	r2 := l.Revision()
	if !(r0 < r1 && r1 < r2) {
		t.Errorf("revisions not increasing: %d, %d, %d", r0, r1, r2)
	}
}
