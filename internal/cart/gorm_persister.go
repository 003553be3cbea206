package cart

import (
	"context"
	"errors"
	"time"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"gorm.io/gorm"
)

// GormPersister stores carts as rows of cart_snapshots.
type GormPersister struct {
	repo repository.CartRepository
}

func NewGormPersister(repo repository.CartRepository) *GormPersister {
	return &GormPersister{repo: repo}
}

func (p *GormPersister) Load(ctx context.Context, key string) (*State, error) {
	snapshot, err := p.repo.FindByKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal([]byte(snapshot.Payload))
}

func (p *GormPersister) Save(ctx context.Context, key string, state State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}
	return p.repo.Upsert(&model.CartSnapshot{Key: key, Payload: string(data)})
}

// DeleteStale removes snapshots not updated since before.
func (p *GormPersister) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	return p.repo.DeleteOlderThan(before)
}
