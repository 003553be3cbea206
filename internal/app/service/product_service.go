package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/pkg/catalog"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// GiftCuration is the result of the gift concierge.
type GiftCuration struct {
	Title    string               `json:"title"`
	Criteria catalog.GiftCriteria `json:"criteria"`
	Products []model.Product      `json:"products"`
}

type ProductService interface {
	Browse(ctx context.Context, q catalog.Query, visible int) (catalog.Page[model.Product], error)
	Search(ctx context.Context, keyword string, sort catalog.SortKey) ([]model.Product, error)
	CurateGifts(ctx context.Context, criteria catalog.GiftCriteria) (*GiftCuration, error)
	GetAvailableFilters(ctx context.Context) (map[catalog.Facet][]string, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	PageSize() int
}

type productService struct {
	catalog     ProductCatalog
	productRepo repository.ProductRepository
	pageSize    int
}

// NewProductService reads through catalog. Admin writes go to productRepo; a
// nil productRepo makes the service read-only.
func NewProductService(productCatalog ProductCatalog, pageSize int, productRepo ...repository.ProductRepository) ProductService {
	var repo repository.ProductRepository
	if len(productRepo) > 0 {
		repo = productRepo[0]
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return &productService{
		catalog:     productCatalog,
		productRepo: repo,
		pageSize:    pageSize,
	}
}

func (s *productService) PageSize() int {
	return s.pageSize
}

// Browse filters and sorts the catalog and returns the first visible matches.
// A visible count below one means one page.
func (s *productService) Browse(ctx context.Context, q catalog.Query, visible int) (catalog.Page[model.Product], error) {
	if visible < 1 {
		visible = s.pageSize
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		logger.Error("Failed to list products", err)
		return catalog.Page[model.Product]{}, err
	}

	matched := catalog.Apply(products, q)
	page := catalog.Paginate(matched, visible)

	logger.Debug("Products browsed", map[string]interface{}{
		"total":    page.Total,
		"visible":  page.Visible,
		"sort":     q.Sort,
		"has_more": page.HasMore,
	})
	return page, nil
}

// Search matches keyword against product name or category.
func (s *productService) Search(ctx context.Context, keyword string, sort catalog.SortKey) ([]model.Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	q := catalog.Query{
		Search: strings.TrimSpace(keyword),
		Scope:  catalog.SearchNameOrCategory,
		Sort:   sort,
	}
	results := catalog.Apply(products, q)

	logger.Debug("Products searched", map[string]interface{}{
		"keyword": keyword,
		"count":   len(results),
	})
	return results, nil
}

func (s *productService) CurateGifts(ctx context.Context, criteria catalog.GiftCriteria) (*GiftCuration, error) {
	criteria = criteria.WithDefaults()

	products, err := s.catalog.List(ctx)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	picks := catalog.Curate(products, criteria)
	logger.Info("Gift curation produced", map[string]interface{}{
		"recipient": criteria.Recipient,
		"occasion":  criteria.Occasion,
		"style":     criteria.Style,
		"budget":    criteria.Budget,
		"count":     len(picks),
	})

	return &GiftCuration{
		Title:    criteria.Title(),
		Criteria: criteria,
		Products: picks,
	}, nil
}

func (s *productService) GetAvailableFilters(ctx context.Context) (map[catalog.Facet][]string, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return catalog.DistinctValues(products), nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.CountInStock < 0:
		return fmt.Errorf("%w: countInStock must not be negative", ErrInvalidProduct)
	}
	return nil
}

func (s *productService) writable() error {
	if s.productRepo == nil {
		return errors.New("product catalog is read-only")
	}
	return nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := s.writable(); err != nil {
		return err
	}

	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if product.Brand == "" {
		product.Brand = model.DefaultBrand
	}
	if err := validateProduct(product); err != nil {
		logger.Warn("Product rejected", map[string]interface{}{
			"name":  product.Name,
			"error": err.Error(),
		})
		return err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// UpdateProduct replaces the stored product. Empty name, category, image,
// description and brand keep their stored values.
func (s *productService) UpdateProduct(product *model.Product) error {
	if err := s.writable(); err != nil {
		return err
	}

	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		return err
	}

	if product.Name == "" {
		product.Name = existing.Name
	}
	if product.Category == "" {
		product.Category = existing.Category
	}
	if product.Image == "" {
		product.Image = existing.Image
	}
	if product.Description == "" {
		product.Description = existing.Description
	}
	if product.Brand == "" {
		product.Brand = existing.Brand
	}
	product.CreatedAt = existing.CreatedAt

	if err := validateProduct(product); err != nil {
		logger.Warn("Product update rejected", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
		return err
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.writable(); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
