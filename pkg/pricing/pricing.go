// Package pricing derives cart totals (subtotal, shipping, tax, total) from line items.
//
// All arithmetic is done in decimal. Rounding is to 2 places, half away from zero,
// which for the non-negative amounts handled here is the usual half-up rule.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Policy holds the pricing constants. Shipping is free when the subtotal is strictly
// greater than FreeShippingThreshold, otherwise FlatShippingFee is charged.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPolicy returns the storefront's standard policy: free shipping over 150,
// flat 10 otherwise, 8% tax.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(150),
		FlatShippingFee:       decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Validate rejects negative constants.
func (p Policy) Validate() error {
	if p.FreeShippingThreshold.IsNegative() {
		return &ValidationError{Field: "free_shipping_threshold", Reason: "must not be negative"}
	}
	if p.FlatShippingFee.IsNegative() {
		return &ValidationError{Field: "flat_shipping_fee", Reason: "must not be negative"}
	}
	if p.TaxRate.IsNegative() {
		return &ValidationError{Field: "tax_rate", Reason: "must not be negative"}
	}
	return nil
}

// Line is the pricing view of a cart line item.
type Line struct {
	Price decimal.Decimal
	Qty   int
}

// Totals are the four derived cart figures.
type Totals struct {
	ItemsPrice    Money `json:"itemsPrice"`
	ShippingPrice Money `json:"shippingPrice"`
	TaxPrice      Money `json:"taxPrice"`
	TotalPrice    Money `json:"totalPrice"`
}

// Calculate derives the totals for lines. An empty list yields zero subtotal and tax
// with the flat shipping fee.
func (p Policy) Calculate(lines []Line) (Totals, error) {
	items := decimal.Zero
	for i, line := range lines {
		if err := validateLine(line); err != nil {
			err.Field = fmt.Sprintf("items[%d].%s", i, err.Field)
			return Totals{}, err
		}
		items = items.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	items = items.Round(2)

	shipping := p.FlatShippingFee.Round(2)
	if items.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := items.Mul(p.TaxRate).Round(2)

	return Totals{
		ItemsPrice:    NewMoney(items),
		ShippingPrice: NewMoney(shipping),
		TaxPrice:      NewMoney(tax),
		TotalPrice:    NewMoney(items.Add(shipping).Add(tax)),
	}, nil
}

func validateLine(line Line) *ValidationError {
	if line.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if line.Qty < 1 {
		return &ValidationError{Field: "qty", Reason: "must be at least 1"}
	}
	return nil
}

// ParsePrice converts a float unit price into a decimal, rejecting NaN, infinities and
// negative values.
func ParsePrice(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "must be a finite number"}
	}
	if f < 0 {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return decimal.NewFromFloat(f), nil
}

// ValidateQty rejects quantities below 1.
func ValidateQty(qty int) error {
	if qty < 1 {
		return &ValidationError{Field: "qty", Reason: "must be at least 1"}
	}
	return nil
}

// ValidationError reports a price or quantity that cannot be priced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
