package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects to redis and verifies the connection with a ping.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		_ = c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the client created by Init, or nil.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// TokenBlacklist records revoked JWTs until they would have expired anyway.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(c *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: c}
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// BlacklistToken revokes token for expiry.
func (b *TokenBlacklist) BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	logger.Debug("Adding token to blacklist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	if expiry <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err)
		return err
	}

	logger.Debug("Token successfully blacklisted")
	return nil
}

// IsTokenBlacklisted reports whether token was revoked.
func (b *TokenBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	val, err := b.client.Get(ctx, blacklistKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err)
		return false, err
	}
	return val == "revoked", nil
}
