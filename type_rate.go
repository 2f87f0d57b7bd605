package dividends

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is a decimal fraction, 0.05 stands for 5%.
type Rate struct {
	value decimal.Decimal
}

// R creates a Rate from a fraction.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate reads a fraction ("0.05") or a percentage ("5%").
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	v, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return Rate{}, err
	}
	if percent {
		v = v.Shift(-2)
	}
	return Rate{value: v}, nil
}

// ParsePercent reads a percentage, with or without the "%" suffix: "0.5" and
// "0.5%" both stand for half a percent.
func ParsePercent(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		s += "%"
	}
	return ParseRate(s)
}

// Decimal returns the fraction.
func (r Rate) Decimal() decimal.Decimal { return r.value }

// Percent returns the rate multiplied by 100.
func (r Rate) Percent() decimal.Decimal { return r.value.Shift(2) }

func (r Rate) Equal(q Rate) bool       { return r.value.Equal(q.value) }
func (r Rate) IsZero() bool            { return r.value.IsZero() }
func (r Rate) Cmp(q Rate) int          { return r.value.Cmp(q.value) }
func (r Rate) Add(q Rate) Rate         { return Rate{value: r.value.Add(q.value)} }
func (r Rate) Round(places int32) Rate { return Rate{value: r.value.Round(places)} }

// String formats the rate as a percentage with two decimals.
func (r Rate) String() string {
	return r.Percent().StringFixed(2) + "%"
}

// SignedString is like String with an explicit sign, 0 is represented as "-".
func (r Rate) SignedString() string {
	res := r.String()
	switch {
	case res == "0.00%" || res == "-0.00%":
		return "-"
	case r.value.IsPositive():
		return "+" + res
	default:
		return res
	}
}

// MarshalJSON writes the fraction as a quoted decimal string.
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.value.String() + `"`), nil
}

// mean returns the arithmetic mean of rates, callers guarantee a non empty slice.
func mean(rates []Rate) Rate {
	var total decimal.Decimal
	for _, r := range rates {
		total = total.Add(r.value)
	}
	return Rate{value: total.Div(decimal.NewFromInt(int64(len(rates))))}
}

// UnmarshalJSON reads the fraction from a quoted or bare decimal.
func (r *Rate) UnmarshalJSON(data []byte) error {
	return r.value.UnmarshalJSON(data)
}
