package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores each cart as JSON under cart:<key>. Every save refreshes the TTL.
type RedisPersister struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisPersister(client redis.Cmdable, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func redisKey(key string) string {
	return "cart:" + key
}

func (p *RedisPersister) Load(ctx context.Context, key string) (*State, error) {
	data, err := p.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func (p *RedisPersister) Save(ctx context.Context, key string, state State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, redisKey(key), data, p.ttl).Err()
}
