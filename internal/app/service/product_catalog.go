package service

import (
	"context"
	"errors"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/fixture"
	"gorm.io/gorm"
)

// ProductCatalog is the single source every browse, search and gift screen reads
// products from.
type ProductCatalog interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
}

type repositoryCatalog struct {
	repo repository.ProductRepository
}

// NewRepositoryCatalog serves the catalog from the products table.
func NewRepositoryCatalog(repo repository.ProductRepository) ProductCatalog {
	return &repositoryCatalog{repo: repo}
}

func (c *repositoryCatalog) List(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.repo.FindAll()
}

func (c *repositoryCatalog) Get(ctx context.Context, id uint) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	product, err := c.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// FixtureCatalog serves the built-in product list, optionally after a delay
// that stands in for network latency.
type FixtureCatalog struct {
	products []model.Product
	delay    time.Duration
}

func NewFixtureCatalog(delay time.Duration) *FixtureCatalog {
	return &FixtureCatalog{products: fixture.Products(), delay: delay}
}

func (c *FixtureCatalog) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *FixtureCatalog) List(ctx context.Context) ([]model.Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *FixtureCatalog) Get(ctx context.Context, id uint) (*model.Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	for _, p := range c.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrProductNotFound
}
