package dividends

import (
	"fmt"
	"strings"
)

// DividendType is the kind of distribution a record describes.
type DividendType int

const (
	// Regular is a recurring quarterly, monthly or annual dividend.
	Regular DividendType = iota
	// Special is a one-time distribution.
	Special
	// ReturnOfCapital is a distribution of paid-in capital.
	ReturnOfCapital
	// Stock is a dividend paid in shares instead of cash.
	Stock
	// SpinOff is a distribution of shares of a spun-off company.
	SpinOff
)

func (t DividendType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Special:
		return "special"
	case ReturnOfCapital:
		return "return-of-capital"
	case Stock:
		return "stock"
	case SpinOff:
		return "spin-off"
	default:
		return "unknown"
	}
}

// ParseDividendType parses a string into a DividendType. The empty string is Regular.
func ParseDividendType(s string) (DividendType, error) {
	switch normalizeTag(s) {
	case "", "regular":
		return Regular, nil
	case "special":
		return Special, nil
	case "return-of-capital", "roc":
		return ReturnOfCapital, nil
	case "stock":
		return Stock, nil
	case "spin-off", "spinoff":
		return SpinOff, nil
	default:
		return Regular, fmt.Errorf("%w: unknown dividend type %q", ErrInvalidParameter, s)
	}
}

func (t DividendType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *DividendType) UnmarshalText(text []byte) error {
	v, err := ParseDividendType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TaxClassification is the tax treatment of a dividend.
type TaxClassification int

const (
	// Unknown is the default classification of a new record.
	Unknown TaxClassification = iota
	Qualified
	NonQualified
	// NonDividendDistribution is a return of capital for tax purposes.
	NonDividendDistribution
	TaxFree
	Foreign
)

func (c TaxClassification) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Qualified:
		return "qualified"
	case NonQualified:
		return "non-qualified"
	case NonDividendDistribution:
		return "return-of-capital"
	case TaxFree:
		return "tax-free"
	case Foreign:
		return "foreign"
	default:
		return "invalid"
	}
}

// TaxClassifications lists all classifications in declaration order.
func TaxClassifications() []TaxClassification {
	return []TaxClassification{Unknown, Qualified, NonQualified, NonDividendDistribution, TaxFree, Foreign}
}

// ParseTaxClassification parses a string into a TaxClassification. The empty string is Unknown.
func ParseTaxClassification(s string) (TaxClassification, error) {
	switch normalizeTag(s) {
	case "", "unknown":
		return Unknown, nil
	case "qualified":
		return Qualified, nil
	case "non-qualified", "nonqualified", "ordinary":
		return NonQualified, nil
	case "return-of-capital", "roc":
		return NonDividendDistribution, nil
	case "tax-free", "taxfree":
		return TaxFree, nil
	case "foreign":
		return Foreign, nil
	default:
		return Unknown, fmt.Errorf("%w: unknown tax classification %q", ErrInvalidParameter, s)
	}
}

func (c TaxClassification) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *TaxClassification) UnmarshalText(text []byte) error {
	v, err := ParseTaxClassification(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// normalizeTag lower-cases a tag and accepts '_' and ' ' for '-'.
func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}
