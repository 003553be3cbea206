package controller

import (
	"errors"
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/beanvanilla/storefront-backend/internal/cart"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       *int `json:"qty"`
}

type SetQtyRequest struct {
	Qty *int `json:"qty"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

func cartKey(c *gin.Context) (string, bool) {
	key, ok := middleware.GetCartKey(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing cart session")
	}
	return key, ok
}

// respondCartError maps cart service errors to responses.
func respondCartError(c *gin.Context, err error) {
	var verr *pricing.ValidationError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.Conflict(c, apperrors.CartInsufficientStock, err.Error())
	case errors.As(err, &verr):
		apperrors.BadRequest(c, apperrors.CartInvalidItem, verr.Error())
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Your cart is empty")
	default:
		middleware.GetLoggerFromContext(c).Error("Cart operation failed", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.CartPersistFailed, "Your cart could not be saved. Please try again")
	}
}

func respondCart(c *gin.Context, state cart.State, err error) {
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetCart returns the cart of the current session
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	state, err := ctrl.cartService.GetCart(c.Request.Context(), key)
	respondCart(c, state, err)
}

// AddToCart sets a product's line, replacing any existing one
// POST /api/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "product_id is required")
		return
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	state, err := ctrl.cartService.AddToCart(c.Request.Context(), key, req.ProductID, qty)
	respondCart(c, state, err)
}

// SetQty is AddToCart addressed by path
// PUT /api/cart/items/:id
func (ctrl *CartController) SetQty(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req SetQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}
	if req.Qty == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "qty is required")
		return
	}

	state, err := ctrl.cartService.AddToCart(c.Request.Context(), key, productID, *req.Qty)
	respondCart(c, state, err)
}

// RemoveFromCart drops a line; unknown ids leave the cart unchanged
// DELETE /api/cart/items/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	state, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), key, productID)
	respondCart(c, state, err)
}

// ClearCart empties the cart
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}
	state, err := ctrl.cartService.ClearCart(c.Request.Context(), key)
	respondCart(c, state, err)
}

// SaveShippingAddress stores a free-form address
// PUT /api/cart/shipping
func (ctrl *CartController) SaveShippingAddress(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}

	var addr cart.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Address must be a JSON object")
		return
	}

	state, err := ctrl.cartService.SaveShippingAddress(c.Request.Context(), key, addr)
	respondCart(c, state, err)
}

// SavePaymentMethod stores the payment method
// PUT /api/cart/payment
func (ctrl *CartController) SavePaymentMethod(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "paymentMethod is required")
		return
	}

	state, err := ctrl.cartService.SavePaymentMethod(c.Request.Context(), key, req.PaymentMethod)
	respondCart(c, state, err)
}
