// Package cart owns shopping cart state: line items, shipping address, payment
// method and the derived totals, persisted as one document per cart key.
package cart

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/beanvanilla/storefront-backend/pkg/pricing"
)

// LineItem is one product in the cart with a snapshot of its catalog fields.
type LineItem struct {
	ID       string        `json:"_id"`
	Name     string        `json:"name"`
	Price    pricing.Money `json:"price"`
	Image    string        `json:"image,omitempty"`
	Images   []string      `json:"images,omitempty"`
	Category string        `json:"category,omitempty"`
	Material string        `json:"material,omitempty"`
	Qty      int           `json:"qty"`
}

// Validate rejects items that could not be priced.
func (l LineItem) Validate() error {
	if l.ID == "" {
		return &pricing.ValidationError{Field: "_id", Reason: "must not be empty"}
	}
	if l.Price.IsNegative() {
		return &pricing.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return pricing.ValidateQty(l.Qty)
}

// Address is a free-form shipping address. No fields are required.
type Address map[string]interface{}

// State is the serialized cart. The embedded totals are always derived from
// CartItems and never set directly.
type State struct {
	CartItems       []LineItem `json:"cartItems"`
	ShippingAddress Address    `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	pricing.Totals
}

// Empty returns a cart with no items, priced under policy.
func Empty(policy pricing.Policy, paymentMethod string) (State, error) {
	s := State{
		CartItems:       []LineItem{},
		ShippingAddress: Address{},
		PaymentMethod:   paymentMethod,
	}
	return s.reprice(policy)
}

// IsEmpty reports whether the cart has no line items.
func (s State) IsEmpty() bool {
	return len(s.CartItems) == 0
}

// ItemCount is the total quantity across all lines.
func (s State) ItemCount() int {
	n := 0
	for _, item := range s.CartItems {
		n += item.Qty
	}
	return n
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.CartItems, func(l LineItem) bool { return l.ID == id })
}

func (s State) clone() State {
	out := s
	out.CartItems = make([]LineItem, len(s.CartItems))
	for i, item := range s.CartItems {
		item.Images = slices.Clone(item.Images)
		out.CartItems[i] = item
	}
	out.ShippingAddress = make(Address, len(s.ShippingAddress))
	for k, v := range s.ShippingAddress {
		out.ShippingAddress[k] = v
	}
	return out
}

func (s State) reprice(policy pricing.Policy) (State, error) {
	lines := make([]pricing.Line, len(s.CartItems))
	for i, item := range s.CartItems {
		lines[i] = pricing.Line{Price: item.Price.Decimal, Qty: item.Qty}
	}
	totals, err := policy.Calculate(lines)
	if err != nil {
		return State{}, err
	}
	s.Totals = totals
	return s, nil
}

// Marshal encodes a state in its persisted layout.
func Marshal(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a persisted state as is. Derived fields are not recomputed.
func Unmarshal(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if s.CartItems == nil {
		s.CartItems = []LineItem{}
	}
	if s.ShippingAddress == nil {
		s.ShippingAddress = Address{}
	}
	return &s, nil
}
