package pricing

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount that serializes as a plain JSON number with two decimals.
// It also implements sql.Scanner and driver.Valuer through the embedded decimal.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MoneyFromInt is a convenience for whole amounts.
func MoneyFromInt(v int64) Money {
	return Money{Decimal: decimal.NewFromInt(v)}
}

// MarshalJSON writes the amount as an unquoted number, e.g. 118.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts both quoted and unquoted numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// String renders the amount with two decimals.
func (m Money) String() string {
	return m.StringFixed(2)
}
