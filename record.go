package dividends

import (
	"fmt"
	"strings"

	"github.com/etnz/dividends/date"
)

// NormalizeSymbol returns the canonical form of a ticker: trimmed and upper case.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Key identifies a dividend record in the ledger.
type Key struct {
	Symbol string
	ExDate date.Date
}

func (k Key) String() string { return k.Symbol + "@" + k.ExDate.String() }

// DividendRecord is a single dividend payment.
//
// Records are immutable values: the total is computed once by
// NewDividendRecord and there is no way to set it independently.
type DividendRecord struct {
	symbol         string
	company        string
	exDate         date.Date
	payDate        date.Date
	amountPerShare Money
	shares         Quantity
	total          Money
	kind           DividendType
	tax            TaxClassification
}

// RecordOption sets optional attributes of a DividendRecord.
type RecordOption func(*DividendRecord)

// WithCompany sets the company name, used for display only.
func WithCompany(name string) RecordOption {
	return func(r *DividendRecord) { r.company = strings.TrimSpace(name) }
}

// WithType sets the dividend type, Regular by default.
func WithType(t DividendType) RecordOption {
	return func(r *DividendRecord) { r.kind = t }
}

// WithTax sets the tax classification, Unknown by default.
func WithTax(c TaxClassification) RecordOption {
	return func(r *DividendRecord) { r.tax = c }
}

// NewDividendRecord validates and creates a dividend record.
//
// The symbol is normalized, the pay date must not be before the ex-date, and
// both the amount per share and the number of shares must be positive.
func NewDividendRecord(symbol string, exDate, payDate date.Date, amountPerShare Money, shares Quantity, opts ...RecordOption) (DividendRecord, error) {
	r := DividendRecord{
		symbol:         NormalizeSymbol(symbol),
		exDate:         exDate,
		payDate:        payDate,
		amountPerShare: amountPerShare,
		shares:         shares,
	}
	for _, opt := range opts {
		opt(&r)
	}

	switch {
	case r.symbol == "":
		return DividendRecord{}, fmt.Errorf("%w: symbol cannot be empty", ErrInvalidRecord)
	case exDate.IsZero():
		return DividendRecord{}, fmt.Errorf("%w: %s: ex-date is missing", ErrInvalidRecord, r.symbol)
	case payDate.IsZero():
		return DividendRecord{}, fmt.Errorf("%w: %s: pay date is missing", ErrInvalidRecord, r.symbol)
	case payDate.Before(exDate):
		return DividendRecord{}, fmt.Errorf("%w: %s: pay date %s is before ex-date %s", ErrInvalidRecord, r.symbol, payDate, exDate)
	case !amountPerShare.IsPositive():
		return DividendRecord{}, fmt.Errorf("%w: %s: amount per share must be positive, got %s", ErrInvalidRecord, r.symbol, amountPerShare.Exact())
	case !shares.IsPositive():
		return DividendRecord{}, fmt.Errorf("%w: %s: shares owned must be positive, got %s", ErrInvalidRecord, r.symbol, shares)
	}
	if r.kind < Regular || r.kind > SpinOff {
		return DividendRecord{}, fmt.Errorf("%w: %s: invalid dividend type %d", ErrInvalidRecord, r.symbol, r.kind)
	}
	if r.tax < Unknown || r.tax > Foreign {
		return DividendRecord{}, fmt.Errorf("%w: %s: invalid tax classification %d", ErrInvalidRecord, r.symbol, r.tax)
	}

	r.total = amountPerShare.Mul(shares)
	return r, nil
}

func (r DividendRecord) Symbol() string         { return r.symbol }
func (r DividendRecord) Company() string        { return r.company }
func (r DividendRecord) ExDate() date.Date      { return r.exDate }
func (r DividendRecord) PayDate() date.Date     { return r.payDate }
func (r DividendRecord) AmountPerShare() Money  { return r.amountPerShare }
func (r DividendRecord) Shares() Quantity       { return r.shares }
func (r DividendRecord) Total() Money           { return r.total }
func (r DividendRecord) Type() DividendType     { return r.kind }
func (r DividendRecord) Tax() TaxClassification { return r.tax }
func (r DividendRecord) Year() int              { return r.exDate.Year() }
func (r DividendRecord) Key() Key               { return Key{Symbol: r.symbol, ExDate: r.exDate} }

// Equal reports whether both records carry the same values.
func (r DividendRecord) Equal(o DividendRecord) bool {
	return r.symbol == o.symbol && r.company == o.company &&
		r.exDate == o.exDate && r.payDate == o.payDate &&
		r.amountPerShare.Equal(o.amountPerShare) && r.shares.Equal(o.shares) &&
		r.kind == o.kind && r.tax == o.tax
}

func (r DividendRecord) String() string {
	return fmt.Sprintf("%s %s %s x %s = %s", r.exDate, r.symbol, r.amountPerShare.Exact(), r.shares, r.total.Exact())
}

// Holding is the current position in a symbol.
type Holding struct {
	Symbol       string
	Shares       Quantity
	CostBasis    *Money // average cost per share, nil if unknown
	CurrentYield *Rate  // indicated yield, nil if unknown
}

// NewHolding validates and creates a holding.
//
// Shares may be zero: the position is closed but stays on record until
// explicitly removed. A cost basis must be positive and a yield non negative.
func NewHolding(symbol string, shares Quantity, costBasis *Money, currentYield *Rate) (Holding, error) {
	h := Holding{
		Symbol:       NormalizeSymbol(symbol),
		Shares:       shares,
		CostBasis:    costBasis,
		CurrentYield: currentYield,
	}
	switch {
	case h.Symbol == "":
		return Holding{}, fmt.Errorf("%w: symbol cannot be empty", ErrInvalidRecord)
	case shares.IsNegative():
		return Holding{}, fmt.Errorf("%w: %s: shares cannot be negative", ErrInvalidRecord, h.Symbol)
	case costBasis != nil && !costBasis.IsPositive():
		return Holding{}, fmt.Errorf("%w: %s: average cost basis must be positive if provided", ErrInvalidRecord, h.Symbol)
	case currentYield != nil && currentYield.value.IsNegative():
		return Holding{}, fmt.Errorf("%w: %s: current yield cannot be negative", ErrInvalidRecord, h.Symbol)
	}
	return h, nil
}

// CostValue returns shares × cost basis, and false when the basis is unknown.
func (h Holding) CostValue() (Money, bool) {
	if h.CostBasis == nil {
		return Money{}, false
	}
	return h.CostBasis.Mul(h.Shares), true
}

// HasUsableCostBasis reports whether the holding can be used as a yield denominator.
func (h Holding) HasUsableCostBasis() bool {
	return h.CostBasis != nil && h.CostBasis.IsPositive() && h.Shares.IsPositive()
}
