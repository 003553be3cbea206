package catalog

import (
	"github.com/shopspring/decimal"
)

// PriceRange is an inclusive range. A nil bound is open.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Between builds a closed range.
func Between(min, max decimal.Decimal) PriceRange {
	return PriceRange{Min: &min, Max: &max}
}

// AtLeast builds a range with no upper bound.
func AtLeast(min decimal.Decimal) PriceRange {
	return PriceRange{Min: &min}
}

// Contains reports whether price lies inside the range, bounds included.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Min != nil && price.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// Budget codes used by the shop and the gift concierge.
const (
	BudgetLow  = "low"
	BudgetMid  = "mid"
	BudgetHigh = "high"
)

// BudgetRange maps a budget code to its price range. Unknown or empty codes are open.
func BudgetRange(code string) PriceRange {
	switch code {
	case BudgetLow:
		return Between(decimal.Zero, decimal.NewFromInt(150))
	case BudgetMid:
		return Between(decimal.NewFromInt(150), decimal.NewFromInt(300))
	case BudgetHigh:
		return AtLeast(decimal.NewFromInt(300))
	default:
		return PriceRange{}
	}
}
