package cart

import (
	"fmt"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backends holds the connections a persister may be built on. Only the one
// named by the configured store needs to be set.
type Backends struct {
	Snapshots repository.CartRepository
	Redis     redis.Cmdable
	Mongo     *mongo.Database
	TTL       time.Duration
}

// NewPersister builds the persister named by store (see config.CartStore*).
func NewPersister(store string, b Backends) (Persister, error) {
	switch store {
	case config.CartStoreMemory:
		return NewMemoryPersister(), nil
	case config.CartStorePostgres:
		if b.Snapshots == nil {
			return nil, fmt.Errorf("cart store %q needs a database", store)
		}
		return NewGormPersister(b.Snapshots), nil
	case config.CartStoreRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("cart store %q needs a redis client", store)
		}
		return NewRedisPersister(b.Redis, b.TTL), nil
	case config.CartStoreMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("cart store %q needs a mongo database", store)
		}
		return NewMongoPersister(b.Mongo), nil
	}
	return nil, fmt.Errorf("unknown cart store %q", store)
}
