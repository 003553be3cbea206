package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/beanvanilla/storefront-backend/internal/cart"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedNotification struct {
	key  string
	kind string
	code string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (r *recordingNotifier) add(n recordedNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) CartUpdated(key string, state cart.State) {
	r.add(recordedNotification{key: key, kind: NotificationCartUpdated})
}

func (r *recordingNotifier) OrderPlaced(key string, receipt *OrderReceipt) {
	r.add(recordedNotification{key: key, kind: NotificationOrderPlaced})
}

func (r *recordingNotifier) Error(key, code, message string) {
	r.add(recordedNotification{key: key, kind: NotificationError, code: code})
}

func (r *recordingNotifier) last() recordedNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

func assertSameTotals(t *testing.T, want, got cart.State) {
	t.Helper()
	assert.Equal(t, want.ItemsPrice.String(), got.ItemsPrice.String())
	assert.Equal(t, want.ShippingPrice.String(), got.ShippingPrice.String())
	assert.Equal(t, want.TaxPrice.String(), got.TaxPrice.String())
	assert.Equal(t, want.TotalPrice.String(), got.TotalPrice.String())
}

func setupCartServiceTest(t *testing.T) (CartService, *cart.MemoryPersister, *recordingNotifier) {
	persister := cart.NewMemoryPersister()
	notifier := &recordingNotifier{}
	svc := NewCartService(NewFixtureCatalog(0), persister, pricing.DefaultPolicy(), "PayPal", notifier)
	return svc, persister, notifier
}

func TestCartService_GetCart_Empty(t *testing.T) {
	svc, persister, _ := setupCartServiceTest(t)

	state, err := svc.GetCart(context.Background(), "guest:new")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
	assert.Equal(t, "PayPal", state.PaymentMethod)
	assert.Equal(t, "10.00", state.TotalPrice.String())
	assert.Zero(t, persister.Len())
}

func TestCartService_AddToCart(t *testing.T) {
	svc, persister, notifier := setupCartServiceTest(t)
	ctx := context.Background()
	key := "user:1"

	// Golden Hour Bracelet, 95.00
	state, err := svc.AddToCart(ctx, key, 2, 1)
	require.NoError(t, err)
	require.Len(t, state.CartItems, 1)
	line := state.CartItems[0]
	assert.Equal(t, "2", line.ID)
	assert.Equal(t, "Golden Hour Bracelet", line.Name)
	assert.Equal(t, "Jewelry", line.Category)
	assert.Equal(t, "14k Gold", line.Material)
	assert.Equal(t, "95.00", state.ItemsPrice.String())
	assert.Equal(t, "10.00", state.ShippingPrice.String())
	assert.Equal(t, "7.60", state.TaxPrice.String())
	assert.Equal(t, "112.60", state.TotalPrice.String())
	assert.Equal(t, NotificationCartUpdated, notifier.last().kind)

	// same product again overwrites the quantity
	state, err = svc.AddToCart(ctx, key, 2, 2)
	require.NoError(t, err)
	require.Len(t, state.CartItems, 1)
	assert.Equal(t, 2, state.CartItems[0].Qty)
	assert.Equal(t, "190.00", state.ItemsPrice.String())
	assert.Equal(t, "0.00", state.ShippingPrice.String())

	_, ok := persister.Raw(key)
	assert.True(t, ok)

	reloaded, err := svc.GetCart(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, state.TotalPrice.String(), reloaded.TotalPrice.String())
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	svc, persister, notifier := setupCartServiceTest(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		productID uint
		qty       int
		wantErr   error
		code      string
	}{
		{"unknown product", 404, 1, ErrProductNotFound, apperrors.CatalogProductNotFound},
		{"more than in stock", 7, 5, ErrInsufficientStock, apperrors.CartInsufficientStock},
		{"zero quantity", 2, 0, ErrInvalidCartItem, apperrors.CartInvalidItem},
		{"negative quantity", 2, -3, ErrInvalidCartItem, apperrors.CartInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddToCart(ctx, "guest:a", tt.productID, tt.qty)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, NotificationError, notifier.last().kind)
			assert.Equal(t, tt.code, notifier.last().code)
		})
	}

	var verr *pricing.ValidationError
	_, err := svc.AddToCart(ctx, "guest:a", 2, 0)
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "qty", verr.Field)

	assert.Zero(t, persister.Len())
}

func TestCartService_AddToCart_ExactStock(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)

	// Regatta Blue Automatic has 4 in stock
	state, err := svc.AddToCart(context.Background(), "guest:a", 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, state.ItemCount())
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)
	ctx := context.Background()
	key := "guest:a"

	_, err := svc.AddToCart(ctx, key, 1, 1)
	require.NoError(t, err)
	before, err := svc.AddToCart(ctx, key, 3, 1)
	require.NoError(t, err)

	unchanged, err := svc.RemoveFromCart(ctx, key, 404)
	require.NoError(t, err)
	assert.Equal(t, before.CartItems, unchanged.CartItems)
	assert.Equal(t, before.TotalPrice.String(), unchanged.TotalPrice.String())

	state, err := svc.RemoveFromCart(ctx, key, 1)
	require.NoError(t, err)
	require.Len(t, state.CartItems, 1)
	assert.Equal(t, "3", state.CartItems[0].ID)

	_, err = svc.SaveShippingAddress(ctx, key, cart.Address{"city": "Honolulu"})
	require.NoError(t, err)

	cleared, err := svc.ClearCart(ctx, key)
	require.NoError(t, err)
	assert.True(t, cleared.IsEmpty())
	assert.Equal(t, "0.00", cleared.ItemsPrice.String())
	assert.Equal(t, "10.00", cleared.ShippingPrice.String())
	assert.Equal(t, "0.00", cleared.TaxPrice.String())
	assert.Equal(t, "10.00", cleared.TotalPrice.String())
	assert.Equal(t, "Honolulu", cleared.ShippingAddress["city"])
}

func TestCartService_AddressAndPayment(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)
	ctx := context.Background()
	key := "user:7"

	priced, err := svc.AddToCart(ctx, key, 6, 1)
	require.NoError(t, err)

	state, err := svc.SaveShippingAddress(ctx, key, cart.Address{"address": "1 Kapiolani Blvd", "postalCode": "96814"})
	require.NoError(t, err)
	assert.Equal(t, "96814", state.ShippingAddress["postalCode"])
	assertSameTotals(t, priced, state)

	state, err = svc.SavePaymentMethod(ctx, key, "Stripe")
	require.NoError(t, err)
	assert.Equal(t, "Stripe", state.PaymentMethod)
	assertSameTotals(t, priced, state)
}

func TestCartService_KeysAreIsolated(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "guest:a", 2, 1)
	require.NoError(t, err)

	other, err := svc.GetCart(ctx, "guest:b")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartService_ConcurrentAddsToOneCart(t *testing.T) {
	svc, _, _ := setupCartServiceTest(t)
	ctx := context.Background()
	key := "guest:busy"

	var wg sync.WaitGroup
	for id := uint(1); id <= 13; id++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.AddToCart(ctx, key, id, 1)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	state, err := svc.GetCart(ctx, key)
	require.NoError(t, err)
	assert.Len(t, state.CartItems, 13)
}

type failingSaves struct {
	*cart.MemoryPersister
}

func (f failingSaves) Save(context.Context, string, cart.State) error {
	return errors.New("disk full")
}

func TestCartService_PersistFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewCartService(NewFixtureCatalog(0), failingSaves{cart.NewMemoryPersister()}, pricing.DefaultPolicy(), "PayPal", notifier)

	_, err := svc.AddToCart(context.Background(), "guest:a", 2, 1)
	assert.Error(t, err)
	assert.Equal(t, apperrors.CartPersistFailed, notifier.last().code)
}
