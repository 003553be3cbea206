package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/beanvanilla/storefront-backend/internal/cart"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCartItem   = errors.New("invalid cart item")
)

type CartService interface {
	GetCart(ctx context.Context, key string) (cart.State, error)
	AddToCart(ctx context.Context, key string, productID uint, qty int) (cart.State, error)
	RemoveFromCart(ctx context.Context, key string, productID uint) (cart.State, error)
	ClearCart(ctx context.Context, key string) (cart.State, error)
	SaveShippingAddress(ctx context.Context, key string, addr cart.Address) (cart.State, error)
	SavePaymentMethod(ctx context.Context, key string, method string) (cart.State, error)
	Checkout(ctx context.Context, key string, place func(cart.State) error) (cart.State, error)
}

type cartService struct {
	catalog        ProductCatalog
	persister      cart.Persister
	policy         pricing.Policy
	defaultPayment string
	locks          *cart.KeyedMutex
	notifier       NotificationService
}

func NewCartService(
	productCatalog ProductCatalog,
	persister cart.Persister,
	policy pricing.Policy,
	defaultPayment string,
	notifier ...NotificationService,
) CartService {
	var n NotificationService = noopNotifier{}
	if len(notifier) > 0 && notifier[0] != nil {
		n = notifier[0]
	}
	return &cartService{
		catalog:        productCatalog,
		persister:      persister,
		policy:         policy,
		defaultPayment: defaultPayment,
		locks:          cart.NewKeyedMutex(),
		notifier:       n,
	}
}

// LineItemID is the cart line id of a catalog product.
func LineItemID(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// withStore runs fn on the cart under key while holding that key's lock.
func (s *cartService) withStore(ctx context.Context, key string, fn func(*cart.Store) (cart.State, error)) (cart.State, error) {
	unlock := s.locks.Lock(key)
	defer unlock()

	store, err := cart.Open(ctx, key, s.persister, s.policy, s.defaultPayment)
	if err != nil {
		logger.Error("Failed to open cart", err, map[string]interface{}{
			"cart_key": key,
		})
		return cart.State{}, err
	}
	return fn(store)
}

// mutate is withStore for operations that change the cart; it pushes the outcome.
func (s *cartService) mutate(ctx context.Context, key string, fn func(*cart.Store) (cart.State, error)) (cart.State, error) {
	state, err := s.withStore(ctx, key, fn)
	if err != nil {
		s.notifyError(key, err)
		return cart.State{}, err
	}
	s.notifier.CartUpdated(key, state)
	return state, nil
}

func (s *cartService) notifyError(key string, err error) {
	var verr *pricing.ValidationError
	switch {
	case errors.Is(err, ErrProductNotFound):
		s.notifier.Error(key, apperrors.CatalogProductNotFound, "That product is no longer available")
	case errors.Is(err, ErrEmptyCart):
		s.notifier.Error(key, apperrors.OrderEmptyCart, "Your cart is empty")
	case errors.Is(err, ErrInsufficientStock):
		s.notifier.Error(key, apperrors.CartInsufficientStock, "Not enough stock for that quantity")
	case errors.As(err, &verr):
		s.notifier.Error(key, apperrors.CartInvalidItem, verr.Error())
	default:
		s.notifier.Error(key, apperrors.CartPersistFailed, "Your cart could not be saved. Please try again")
	}
}

func (s *cartService) GetCart(ctx context.Context, key string) (cart.State, error) {
	return s.withStore(ctx, key, func(store *cart.Store) (cart.State, error) {
		return store.State(), nil
	})
}

// AddToCart snapshots the product and sets its line to qty, replacing any
// existing line for the product.
func (s *cartService) AddToCart(ctx context.Context, key string, productID uint, qty int) (cart.State, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_key":   key,
		"product_id": productID,
		"qty":        qty,
	})

	return s.mutate(ctx, key, func(store *cart.Store) (cart.State, error) {
		if err := pricing.ValidateQty(qty); err != nil {
			logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
				"cart_key": key,
				"qty":      qty,
			})
			return cart.State{}, fmt.Errorf("%w: %w", ErrInvalidCartItem, err)
		}

		product, err := s.catalog.Get(ctx, productID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
					"cart_key":   key,
					"product_id": productID,
				})
			}
			return cart.State{}, err
		}

		if !product.InStock(qty) {
			logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
				"cart_key":   key,
				"product_id": productID,
				"requested":  qty,
				"available":  product.CountInStock,
			})
			return cart.State{}, fmt.Errorf("%w: %d of %q available", ErrInsufficientStock, product.CountInStock, product.Name)
		}

		item := cart.LineItem{
			ID:       LineItemID(product.ID),
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Images:   []string{product.Image},
			Category: product.Category,
			Material: product.Material,
			Qty:      qty,
		}
		state, err := store.AddToCart(ctx, item)
		if err != nil {
			var verr *pricing.ValidationError
			if errors.As(err, &verr) {
				return cart.State{}, fmt.Errorf("%w: %w", ErrInvalidCartItem, err)
			}
			return cart.State{}, err
		}
		return state, nil
	})
}

func (s *cartService) RemoveFromCart(ctx context.Context, key string, productID uint) (cart.State, error) {
	logger.Info("Removing item from cart", map[string]interface{}{
		"cart_key":   key,
		"product_id": productID,
	})
	return s.mutate(ctx, key, func(store *cart.Store) (cart.State, error) {
		return store.RemoveFromCart(ctx, LineItemID(productID))
	})
}

func (s *cartService) ClearCart(ctx context.Context, key string) (cart.State, error) {
	logger.Info("Clearing cart", map[string]interface{}{
		"cart_key": key,
	})
	return s.mutate(ctx, key, func(store *cart.Store) (cart.State, error) {
		return store.ClearCart(ctx)
	})
}

func (s *cartService) SaveShippingAddress(ctx context.Context, key string, addr cart.Address) (cart.State, error) {
	return s.mutate(ctx, key, func(store *cart.Store) (cart.State, error) {
		return store.SaveShippingAddress(ctx, addr)
	})
}

func (s *cartService) SavePaymentMethod(ctx context.Context, key string, method string) (cart.State, error) {
	return s.mutate(ctx, key, func(store *cart.Store) (cart.State, error) {
		return store.SavePaymentMethod(ctx, method)
	})
}

// Checkout hands the current cart to place and clears it once place succeeds.
// It returns the cart as it was when placed. An empty cart is ErrEmptyCart.
func (s *cartService) Checkout(ctx context.Context, key string, place func(cart.State) error) (cart.State, error) {
	var placed cart.State
	cleared, err := s.withStore(ctx, key, func(store *cart.Store) (cart.State, error) {
		placed = store.State()
		if placed.IsEmpty() {
			return cart.State{}, ErrEmptyCart
		}
		if err := place(placed); err != nil {
			return cart.State{}, err
		}
		return store.ClearCart(ctx)
	})
	if err != nil {
		s.notifyError(key, err)
		return cart.State{}, err
	}
	s.notifier.CartUpdated(key, cleared)
	return placed, nil
}
