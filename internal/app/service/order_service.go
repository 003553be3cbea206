package service

import (
	"context"
	"errors"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/cart"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/beanvanilla/storefront-backend/pkg/util"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderReceipt is what checkout returns. Orders are not stored and no payment is
// taken; the receipt is the whole record of the order.
type OrderReceipt struct {
	OrderID         string          `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	OrderItems      []cart.LineItem `json:"orderItems"`
	ShippingAddress cart.Address    `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PlacedAt        time.Time       `json:"placedAt"`
	pricing.Totals
}

type OrderService interface {
	PlaceOrder(ctx context.Context, key string) (*OrderReceipt, error)
}

type orderService struct {
	carts    CartService
	notifier NotificationService
	now      func() time.Time
}

func NewOrderService(carts CartService, notifier ...NotificationService) OrderService {
	var n NotificationService = noopNotifier{}
	if len(notifier) > 0 && notifier[0] != nil {
		n = notifier[0]
	}
	return &orderService{carts: carts, notifier: n, now: time.Now}
}

// PlaceOrder turns the cart under key into a receipt and empties the cart.
func (s *orderService) PlaceOrder(ctx context.Context, key string) (*OrderReceipt, error) {
	logger.Info("Placing order", map[string]interface{}{
		"cart_key": key,
	})

	var receipt *OrderReceipt
	_, err := s.carts.Checkout(ctx, key, func(state cart.State) error {
		receipt = &OrderReceipt{
			OrderID:         uuid.NewString(),
			OrderNumber:     util.GenerateOrderNumber(),
			OrderItems:      state.CartItems,
			ShippingAddress: state.ShippingAddress,
			PaymentMethod:   state.PaymentMethod,
			PlacedAt:        s.now().UTC(),
			Totals:          state.Totals,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
				"cart_key": key,
			})
		} else {
			logger.Error("Failed to place order", err, map[string]interface{}{
				"cart_key": key,
			})
		}
		return nil, err
	}

	s.notifier.OrderPlaced(key, receipt)
	logger.Info("Order placed successfully", map[string]interface{}{
		"cart_key":     key,
		"order_number": receipt.OrderNumber,
		"items":        len(receipt.OrderItems),
		"total_price":  receipt.TotalPrice.String(),
	})
	return receipt, nil
}
