package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect opens a client against cfg.URI, pings it and returns the configured database.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	logger.Info("Connecting to MongoDB", map[string]interface{}{
		"database": cfg.DBName,
	})

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Failed to ping MongoDB", err)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB successfully")
	return client, client.Database(cfg.DBName), nil
}

// Disconnect closes client, waiting at most five seconds.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
