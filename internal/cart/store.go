package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
)

// Store owns one cart. Every mutation computes the next state, persists it as a
// full overwrite and only then replaces the in-memory state, so a failed save
// leaves the cart as it was.
type Store struct {
	mu        sync.Mutex
	key       string
	persister Persister
	policy    pricing.Policy
	state     State
}

// Open loads the cart stored under key, or starts an empty one.
func Open(ctx context.Context, key string, persister Persister, policy pricing.Policy, defaultPayment string) (*Store, error) {
	s := &Store{
		key:       key,
		persister: persister,
		policy:    policy,
	}

	loaded, err := persister.Load(ctx, key)
	switch {
	case err == nil:
		s.state = *loaded
	case errors.Is(err, ErrNotFound):
		empty, err := Empty(policy, defaultPayment)
		if err != nil {
			return nil, err
		}
		s.state = empty
	default:
		return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
	}
	return s, nil
}

// Key is the persistence key of this cart.
func (s *Store) Key() string {
	return s.key
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// AddToCart inserts item, or replaces the line with the same id entirely.
// Quantity changes are made by adding the item again with the new qty.
func (s *Store) AddToCart(ctx context.Context, item LineItem) (State, error) {
	if err := item.Validate(); err != nil {
		return State{}, err
	}
	return s.mutate(ctx, "add", func(next *State) {
		item.Images = append([]string(nil), item.Images...)
		if i := next.index(item.ID); i >= 0 {
			next.CartItems[i] = item
			return
		}
		next.CartItems = append(next.CartItems, item)
	}, true)
}

// RemoveFromCart drops the line with id. Unknown ids leave the cart unchanged.
func (s *Store) RemoveFromCart(ctx context.Context, id string) (State, error) {
	return s.mutate(ctx, "remove", func(next *State) {
		if i := next.index(id); i >= 0 {
			next.CartItems = append(next.CartItems[:i], next.CartItems[i+1:]...)
		}
	}, true)
}

// ClearCart removes every line. Address and payment method are kept.
func (s *Store) ClearCart(ctx context.Context) (State, error) {
	return s.mutate(ctx, "clear", func(next *State) {
		next.CartItems = []LineItem{}
	}, true)
}

// SaveShippingAddress stores addr. Shipping is flat-rate, so totals are not recomputed.
func (s *Store) SaveShippingAddress(ctx context.Context, addr Address) (State, error) {
	return s.mutate(ctx, "shipping_address", func(next *State) {
		next.ShippingAddress = make(Address, len(addr))
		for k, v := range addr {
			next.ShippingAddress[k] = v
		}
	}, false)
}

// SavePaymentMethod stores method without recomputing totals.
func (s *Store) SavePaymentMethod(ctx context.Context, method string) (State, error) {
	return s.mutate(ctx, "payment_method", func(next *State) {
		next.PaymentMethod = method
	}, false)
}

func (s *Store) mutate(ctx context.Context, op string, apply func(*State), reprice bool) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	apply(&next)

	if reprice {
		priced, err := next.reprice(s.policy)
		if err != nil {
			return State{}, err
		}
		next = priced
	}

	if err := s.persister.Save(ctx, s.key, next); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"cart_key":  s.key,
			"operation": op,
		})
		return State{}, fmt.Errorf("failed to persist cart %s: %w", s.key, err)
	}

	s.state = next
	logger.Debug("Cart updated", map[string]interface{}{
		"cart_key":    s.key,
		"operation":   op,
		"items":       len(next.CartItems),
		"total_price": next.TotalPrice.String(),
	})
	return next.clone(), nil
}
