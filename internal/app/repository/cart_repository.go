package repository

import (
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindByKey(key string) (*model.CartSnapshot, error)
	Upsert(snapshot *model.CartSnapshot) error
	DeleteByKey(key string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByKey(key string) (*model.CartSnapshot, error) {
	logger.Debug("Finding cart snapshot in database", map[string]interface{}{
		"cart_key": key,
	})

	var snapshot model.CartSnapshot
	if err := r.db.First(&snapshot, "cart_key = ?", key).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart snapshot in database", err, map[string]interface{}{
				"cart_key": key,
			})
		}
		return nil, err
	}

	logger.Debug("Cart snapshot found in database", map[string]interface{}{
		"cart_key":   key,
		"updated_at": snapshot.UpdatedAt,
	})
	return &snapshot, nil
}

// Upsert replaces the payload stored under snapshot.Key.
func (r *cartRepository) Upsert(snapshot *model.CartSnapshot) error {
	logger.Debug("Saving cart snapshot in database", map[string]interface{}{
		"cart_key": snapshot.Key,
		"bytes":    len(snapshot.Payload),
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(snapshot).Error
	if err != nil {
		logger.Error("Failed to save cart snapshot in database", err, map[string]interface{}{
			"cart_key": snapshot.Key,
		})
		return err
	}

	logger.Debug("Cart snapshot saved in database", map[string]interface{}{
		"cart_key": snapshot.Key,
	})
	return nil
}

func (r *cartRepository) DeleteByKey(key string) error {
	logger.Debug("Deleting cart snapshot from database", map[string]interface{}{
		"cart_key": key,
	})

	if err := r.db.Delete(&model.CartSnapshot{}, "cart_key = ?", key).Error; err != nil {
		logger.Error("Failed to delete cart snapshot from database", err, map[string]interface{}{
			"cart_key": key,
		})
		return err
	}
	return nil
}

// DeleteOlderThan prunes snapshots untouched since cutoff.
func (r *cartRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	logger.Debug("Deleting stale cart snapshots from database", map[string]interface{}{
		"cutoff": cutoff,
	})

	result := r.db.Where("updated_at < ?", cutoff).Delete(&model.CartSnapshot{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart snapshots from database", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}

	logger.Debug("Stale cart snapshots deleted from database", map[string]interface{}{
		"deleted": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
