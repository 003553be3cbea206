package controller

import (
	"net/http"
	"testing"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	apperrors "github.com/beanvanilla/storefront-backend/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository) {
	_, productRepo := setupCatalogDB(t)
	productService := service.NewProductService(service.NewRepositoryCatalog(productRepo), 6, productRepo)
	ctrl := NewProductController(productService)

	router := gin.New()
	products := router.Group("/api/products")
	products.GET("", ctrl.ListProducts)
	products.GET("/search", ctrl.SearchProducts)
	products.GET("/filters", ctrl.GetFilters)
	products.GET("/:id", ctrl.GetProduct)
	products.POST("", ctrl.CreateProduct)
	products.PUT("/:id", ctrl.UpdateProduct)
	products.DELETE("/:id", ctrl.DeleteProduct)
	return router, productRepo
}

type productPage struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Visible  int             `json:"visible"`
	HasMore  bool            `json:"hasMore"`
	PageSize int             `json:"pageSize"`
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductController_ListProducts(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	tests := []struct {
		name    string
		path    string
		total   int
		hasMore bool
		want    []string
	}{
		{
			name:    "first page",
			path:    "/api/products",
			total:   13,
			hasMore: true,
		},
		{
			name:  "watches by price",
			path:  "/api/products?category=Watches&sort=priceLow",
			total: 6,
			want: []string{
				"Koa Minimalist Slim",
				"Heritage Ebony Series",
				"Midnight Maple Diver",
				"Slate Grey Chrono",
				"Original Sandalwood Chrono",
				"Regatta Blue Automatic",
			},
		},
		{
			name:  "materials are OR within the facet",
			path:  "/api/products?category=Jewelry&material=14k%20Gold,Sterling%20Silver&budget=low",
			total: 3,
			want:  []string{"Golden Hour Bracelet", "Silver Birch Bangle", "Sapphire Drop Earrings"},
		},
		{
			name:  "all is ignored",
			path:  "/api/products?category=all&visible=100",
			total: 13,
		},
		{
			name:  "explicit price range",
			path:  "/api/products?minPrice=100&maxPrice=120&sort=price_asc",
			total: 2,
			want:  []string{"Earthy Amber Pendant", "Minimalist Koa Ring"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "GET", tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var page productPage
			decodeBody(t, w, &page)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.hasMore, page.HasMore)
			assert.Equal(t, 6, page.PageSize)
			if tt.want != nil {
				assert.Equal(t, tt.want, names(page.Products))
			}
		})
	}
}

func TestProductController_ListProducts_InvalidQuery(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	tests := []struct {
		name string
		path string
		code string
	}{
		{"unknown sort", "/api/products?sort=popularity", apperrors.CatalogInvalidSort},
		{"negative price", "/api/products?minPrice=-1", apperrors.CatalogInvalidPrice},
		{"inverted range", "/api/products?minPrice=300&maxPrice=100", apperrors.CatalogInvalidPrice},
		{"bad visible", "/api/products?visible=lots", apperrors.ValidationInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "GET", tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestProductController_SearchProducts(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, "GET", "/api/products/search?keyword=koa&sort=az", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Keyword  string          `json:"keyword"`
		Count    int             `json:"count"`
		Products []model.Product `json:"products"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "koa", body.Keyword)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, []string{"Koa Minimalist Slim", "Minimalist Koa Ring"}, names(body.Products))
}

func TestProductController_GetFilters(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, "GET", "/api/products/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Facets  map[string][]string `json:"facets"`
		Budgets []string            `json:"budgets"`
		Sorts   []string            `json:"sorts"`
	}
	decodeBody(t, w, &body)
	assert.ElementsMatch(t, []string{"Jewelry", "Watches"}, body.Facets["category"])
	assert.Equal(t, []string{"low", "mid", "high"}, body.Budgets)
	assert.Contains(t, body.Sorts, "price_asc")
}

func TestProductController_GetProduct(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, "GET", "/api/products/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product model.Product
	decodeBody(t, w, &product)
	assert.Equal(t, "Golden Hour Bracelet", product.Name)
	assert.Equal(t, "95.00", product.Price.String())

	w = performRequest(router, "GET", "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CatalogProductNotFound, errorCode(t, w))

	w = performRequest(router, "GET", "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidID, errorCode(t, w))
}

func TestProductController_AdminCRUD(t *testing.T) {
	router, productRepo := setupProductControllerTest(t)

	w := performRequest(router, "POST", "/api/products", gin.H{
		"name":         "Walnut Cuff",
		"image":        "/images/walnut-cuff.jpg",
		"category":     "Jewelry",
		"description":  "A carved walnut cuff",
		"price":        75.5,
		"countInStock": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Product
	decodeBody(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.DefaultBrand, created.Brand)
	assert.Equal(t, "75.50", created.Price.String())

	w = performRequest(router, "POST", "/api/products", gin.H{"name": "Broken", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "PUT", "/api/products/3", gin.H{"price": 130, "countInStock": 12})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err := productRepo.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Minimalist Koa Ring", stored.Name)
	assert.Equal(t, "130.00", stored.Price.String())

	w = performRequest(router, "PUT", "/api/products/999", gin.H{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "DELETE", "/api/products/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, "GET", "/api/products/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = performRequest(router, "DELETE", "/api/products/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
