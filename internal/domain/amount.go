package domain

import "github.com/shopspring/decimal"

// Amount is a NUMERIC value that keeps its scale on the wire: a price stored
// as 24.50 is encoded as "24.50", not "24.5".
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// Text renders the value with as many fractional digits as it was parsed or
// scanned with
func (a Amount) Text() string {
	if exp := a.Exponent(); exp < 0 {
		return a.StringFixed(-exp)
	}
	return a.String()
}

// MarshalJSON encodes the amount as a quoted decimal string
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.Text() + `"`), nil
}
