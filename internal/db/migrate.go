package db

import (
	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/fixture"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartSnapshot{},
	}
}

// Migrate runs database migrations.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedProducts loads the fixture catalog into an empty products table.
func SeedProducts(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	products := fixture.Products()
	for i := range products {
		// let the database assign ids
		products[i].ID = 0
	}
	if err := conn.Create(&products).Error; err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Products seeded successfully", map[string]interface{}{
		"total_products": len(products),
	})
	return nil
}
