package service

import (
	"time"

	"github.com/beanvanilla/storefront-backend/internal/cart"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
)

const (
	NotificationCartUpdated = "cart_updated"
	NotificationOrderPlaced = "order_placed"
	NotificationError       = "error"
)

// Notification is pushed to every open connection of a cart session.
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	SentAt  time.Time   `json:"sentAt"`
}

// Publisher delivers a message to the connections of one cart session without blocking.
type Publisher interface {
	Publish(key string, message interface{}) error
}

// NotificationService pushes cart events to the storefront. Publishing never
// fails the operation that triggered it.
type NotificationService interface {
	CartUpdated(key string, state cart.State)
	OrderPlaced(key string, receipt *OrderReceipt)
	Error(key, code, message string)
}

type notificationService struct {
	publisher Publisher
}

func NewNotificationService(publisher Publisher) NotificationService {
	return &notificationService{publisher: publisher}
}

type cartSummary struct {
	ItemCount  int           `json:"itemCount"`
	TotalPrice pricing.Money `json:"totalPrice"`
}

func (s *notificationService) send(key string, n Notification) {
	n.SentAt = time.Now().UTC()
	_ = s.publisher.Publish(key, n)
}

func (s *notificationService) CartUpdated(key string, state cart.State) {
	s.send(key, Notification{
		Type: NotificationCartUpdated,
		Data: cartSummary{ItemCount: state.ItemCount(), TotalPrice: state.TotalPrice},
	})
}

func (s *notificationService) OrderPlaced(key string, receipt *OrderReceipt) {
	s.send(key, Notification{
		Type:    NotificationOrderPlaced,
		Message: "Order " + receipt.OrderNumber + " placed",
		Data:    receipt,
	})
}

func (s *notificationService) Error(key, code, message string) {
	s.send(key, Notification{
		Type:    NotificationError,
		Code:    code,
		Message: message,
	})
}

type noopNotifier struct{}

func (noopNotifier) CartUpdated(string, cart.State)    {}
func (noopNotifier) OrderPlaced(string, *OrderReceipt) {}
func (noopNotifier) Error(string, string, string)      {}
