package dividends

import (
	"errors"
	"testing"
)

func TestYieldAnalysis(t *testing.T) {
	l := appleMicrosoft(t)
	if err := l.Add(div(t, "KO", "2024-03-14", 0.485, 100), false); err != nil {
		t.Fatal(err)
	}
	l.UpsertHolding(holding(t, "AAPL", 100, 150)) // 15000
	l.UpsertHolding(holding(t, "MSFT", 50, 300))  // 15000
	noBasis, _ := NewHolding("T", Q(200), nil, nil)
	l.UpsertHolding(noBasis)
	l.UpsertHolding(holding(t, "VZ", 0, 40))

	r, err := analyzer(l, "2025-06-15").YieldAnalysis(nil)
	if err != nil {
		t.Fatalf("YieldAnalysis() error = %v", err)
	}
	if r.Year != 2024 {
		t.Errorf("Year = %d, want the most recent year 2024", r.Year)
	}
	// (25 + 40) / 30000
	if got, want := r.PortfolioYield.Decimal().StringFixed(6), "0.002167"; got != want {
		t.Errorf("PortfolioYield = %s, want %s", got, want)
	}

	tests := []struct {
		symbol string
		known  bool
		reason string
	}{
		{"AAPL", true, ""},
		{"KO", false, ReasonNoHolding},
		{"MSFT", true, ""},
		{"T", false, ReasonNoCostBasis},
		{"VZ", false, ReasonNoShares},
	}
	if len(r.Symbols) != len(tests) {
		t.Fatalf("Symbols = %+v, want %d entries", r.Symbols, len(tests))
	}
	for i, tt := range tests {
		got := r.Symbols[i]
		if got.Symbol != tt.symbol || got.Known != tt.known || got.Reason != tt.reason {
			t.Errorf("Symbols[%d] = %+v, want %s known=%v reason=%q", i, got, tt.symbol, tt.known, tt.reason)
		}
	}
	if !r.UnknownDividends.Equal(USD(48.5)) {
		t.Errorf("UnknownDividends = %s, want 48.5", r.UnknownDividends.Exact())
	}
	if r.Highest == nil || r.Highest.Symbol != "MSFT" || r.Lowest == nil || r.Lowest.Symbol != "AAPL" {
		t.Errorf("Highest/Lowest = %+v/%+v", r.Highest, r.Lowest)
	}
	if n := len(r.Unknown()); n != 3 {
		t.Errorf("Unknown() returned %d symbols, want 3", n)
	}
}

func TestYieldAnalysis_Year(t *testing.T) {
	l := appleMicrosoft(t)
	l.UpsertHolding(holding(t, "AAPL", 100, 150))
	year := 2023
	r, err := analyzer(l, "2025-06-15").YieldAnalysis(&year)
	if err != nil {
		t.Fatalf("YieldAnalysis(2023) error = %v", err)
	}
	// 24 / 15000
	if got, want := r.PortfolioYield.Decimal().StringFixed(4), "0.0016"; got != want {
		t.Errorf("PortfolioYield = %s, want %s", got, want)
	}
}

func TestYieldAnalysis_Errors(t *testing.T) {
	t.Run("no cost basis", func(t *testing.T) {
		l := appleMicrosoft(t)
		noBasis, _ := NewHolding("AAPL", Q(100), nil, nil)
		l.UpsertHolding(noBasis)
		l.UpsertHolding(holding(t, "MSFT", 0, 300)) // basis but no shares
		if _, err := analyzer(l, "2025-06-15").YieldAnalysis(nil); !errors.Is(err, ErrMissingCostBasis) {
			t.Errorf("YieldAnalysis() error = %v, want ErrMissingCostBasis", err)
		}
	})
	t.Run("no holdings", func(t *testing.T) {
		if _, err := analyzer(appleMicrosoft(t), "2025-06-15").YieldAnalysis(nil); !errors.Is(err, ErrMissingCostBasis) {
			t.Errorf("YieldAnalysis() error = %v, want ErrMissingCostBasis", err)
		}
	})
	t.Run("no dividends", func(t *testing.T) {
		l := NewLedger()
		l.UpsertHolding(holding(t, "AAPL", 100, 150))
		if _, err := analyzer(l, "2025-06-15").YieldAnalysis(nil); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("YieldAnalysis() error = %v, want ErrInsufficientData", err)
		}
	})
}
