package controller

import (
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder checks out the session's cart. No payment is taken.
// POST /api/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		return
	}

	receipt, err := ctrl.orderService.PlaceOrder(c.Request.Context(), key)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}
