package controller

import (
	"errors"
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/pkg/catalog"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest is the admin create/update body.
type ProductRequest struct {
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Material     string   `json:"material"`
	Stone        string   `json:"stone"`
	Movement     string   `json:"movement"`
	CaseSize     string   `json:"caseSize"`
	Occasions    []string `json:"occasions"`
	Tags         []string `json:"tags"`
	Recipients   []string `json:"recipients"`
	Price        float64  `json:"price"`
	CountInStock int      `json:"countInStock"`
}

func (r ProductRequest) toModel() (*model.Product, error) {
	price, err := pricing.ParsePrice(r.Price)
	if err != nil {
		return nil, err
	}
	return &model.Product{
		Name:         r.Name,
		Image:        r.Image,
		Brand:        r.Brand,
		Category:     r.Category,
		Type:         r.Type,
		Description:  r.Description,
		Material:     r.Material,
		Stone:        r.Stone,
		Movement:     r.Movement,
		CaseSize:     r.CaseSize,
		Occasions:    r.Occasions,
		Tags:         r.Tags,
		Recipients:   r.Recipients,
		Price:        pricing.NewMoney(price),
		CountInStock: r.CountInStock,
	}, nil
}

func respondQueryError(c *gin.Context, err error) {
	var qerr *queryError
	if errors.As(err, &qerr) && qerr.code == "sort" {
		apperrors.BadRequest(c, apperrors.CatalogInvalidSort, err.Error())
		return
	}
	apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, err.Error())
}

// ListProducts filters, sorts and pages the catalog
// GET /api/products?category=Watches&material=Koa%20Wood,Ebony&budget=mid&sort=price_asc&visible=12
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	q, err := parseCatalogQuery(c)
	if err != nil {
		log.Warn("Invalid catalog query", map[string]interface{}{
			"error": err.Error(),
		})
		respondQueryError(c, err)
		return
	}
	visible, err := parseVisible(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, err.Error())
		return
	}

	page, err := ctrl.productService.Browse(c.Request.Context(), q, visible)
	if err != nil {
		log.Error("Failed to browse products", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": page.Items,
		"total":    page.Total,
		"visible":  page.Visible,
		"hasMore":  page.HasMore,
		"pageSize": ctrl.productService.PageSize(),
	})
}

// SearchProducts matches a keyword against name or category
// GET /api/products/search?keyword=watch
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	keyword := c.Query("keyword")

	sort, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.CatalogInvalidSort, err.Error())
		return
	}

	products, err := ctrl.productService.Search(c.Request.Context(), keyword, sort)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to search products", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keyword":  keyword,
		"count":    len(products),
		"products": products,
	})
}

// GetFilters returns the distinct values of every facet
// GET /api/products/filters
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	filters, err := ctrl.productService.GetAvailableFilters(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load filters", err)
		apperrors.InternalError(c, "")
		return
	}

	budgets := []string{catalog.BudgetLow, catalog.BudgetMid, catalog.BudgetHigh}
	c.JSON(http.StatusOK, gin.H{
		"facets":  filters,
		"budgets": budgets,
		"sorts":   catalog.SortKeys,
	})
}

// GetProduct returns one product
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (ctrl *ProductController) bindProduct(c *gin.Context) (*model.Product, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return nil, false
	}
	product, err := req.toModel()
	if err != nil {
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, err.Error())
		return nil, false
	}
	return product, true
}

func (ctrl *ProductController) respondWriteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrInvalidProduct):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		middleware.GetLoggerFromContext(c).Error("Product write failed", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// CreateProduct adds a product (admin)
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	product, ok := ctrl.bindProduct(c)
	if !ok {
		return
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		ctrl.respondWriteError(c, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a product (admin)
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}
	product, ok := ctrl.bindProduct(c)
	if !ok {
		return
	}
	product.ID = id

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		ctrl.respondWriteError(c, err, "update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product (admin)
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondWriteError(c, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
