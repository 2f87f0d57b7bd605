package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Year returns the range covering the whole calendar year.
func Year(year int) Range {
	return NewRange(New(year, 1, 1), Yearly)
}

// TrailingMonths returns the range of n months ending on 'on', the
// first day excluded, so that twelve trailing months never count the same
// calendar day twice.
func TrailingMonths(on Date, n int) Range {
	return Range{From: on.AddMonth(-n).Add(1), To: on}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// String returns a compact representation of the range.
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
