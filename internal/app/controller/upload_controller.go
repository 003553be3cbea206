package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage storage.ImageStorage
}

// NewUploadController accepts a nil storage; uploads then answer 503.
func NewUploadController(images storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: images,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignProductImage issues an upload URL for a product image (admin)
// POST /api/products/upload-url
func (ctrl *UploadController) PresignProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.storage == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadNotConfigured, "Image uploads are not configured")
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	upload, err := ctrl.storage.PresignProductImage(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WEBP images are allowed")
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"key": upload.Key,
	})
	c.JSON(http.StatusOK, upload)
}
