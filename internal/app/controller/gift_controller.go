package controller

import (
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/app/service"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/pkg/catalog"
	"github.com/gin-gonic/gin"
)

type GiftController struct {
	productService service.ProductService
}

func NewGiftController(productService service.ProductService) *GiftController {
	return &GiftController{productService: productService}
}

// Curate runs the gift concierge
// GET /api/gifts/curate?recipient=her&occasion=anniversary&style=minimalist&budget=mid
func (ctrl *GiftController) Curate(c *gin.Context) {
	var criteria catalog.GiftCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid gift criteria")
		return
	}

	curation, err := ctrl.productService.CurateGifts(c.Request.Context(), criteria)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Gift curation failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, curation)
}
