package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/internal/app/controller"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/beanvanilla/storefront-backend/internal/cart"
	"github.com/beanvanilla/storefront-backend/internal/db"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/beanvanilla/storefront-backend/internal/router"
	"github.com/beanvanilla/storefront-backend/internal/scheduler"
	"github.com/beanvanilla/storefront-backend/internal/storage"
	"github.com/beanvanilla/storefront-backend/internal/websocket"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	mongopkg "github.com/beanvanilla/storefront-backend/pkg/mongo"
	"github.com/beanvanilla/storefront-backend/pkg/pricing"
	redispkg "github.com/beanvanilla/storefront-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.IsDevelopment() {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: cfg.Server.IsDevelopment(),
	})

	logger.Info("Starting Bean and Vanilla API", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"cart_store":  cfg.Cart.Store,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.SeedProducts(db.GetDB()); err != nil {
		logger.Warn("Failed to seed products", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Optional backends
	backends := cart.Backends{
		Snapshots: repository.NewCartRepository(db.GetDB()),
		TTL:       cfg.Cart.TTL,
	}

	var blacklist *redispkg.TokenBlacklist
	if cfg.Redis.Enabled() {
		if err := redispkg.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redispkg.Close()
		blacklist = redispkg.NewTokenBlacklist(redispkg.GetClient())
		backends.Redis = redispkg.GetClient()
	} else {
		logger.Warn("Redis not configured, logout will not revoke tokens")
	}

	if cfg.Cart.Store == config.CartStoreMongo {
		client, database, err := mongopkg.Connect(ctx, &cfg.Mongo)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", err)
		}
		defer func() {
			if err := mongopkg.Disconnect(client); err != nil {
				logger.Error("Failed to disconnect MongoDB", err)
			}
		}()
		backends.Mongo = database
	}

	persister, err := cart.NewPersister(cfg.Cart.Store, backends)
	if err != nil {
		logger.Fatal("Failed to create cart persister", err)
	}

	policy := pricing.Policy{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		FlatShippingFee:       cfg.Pricing.FlatShippingFee,
		TaxRate:               cfg.Pricing.TaxRate,
	}
	if err := policy.Validate(); err != nil {
		logger.Fatal("Invalid pricing configuration", err)
	}

	// Notification hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	var images storage.ImageStorage
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, &cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", err)
		}
		images = s3Storage
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	productCatalog := service.NewRepositoryCatalog(productRepo)

	var authService service.AuthService
	var authMiddleware *middleware.AuthMiddleware
	if blacklist != nil {
		authService = service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, blacklist)
		authMiddleware = middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklist)
	} else {
		authService = service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
		authMiddleware = middleware.NewAuthMiddleware(cfg.JWT.Secret)
	}

	notifier := service.NewNotificationService(hub)
	productService := service.NewProductService(productCatalog, cfg.Catalog.PageSize, productRepo)
	cartService := service.NewCartService(productCatalog, persister, policy, cfg.Cart.DefaultPaymentMethod, notifier)
	orderService := service.NewOrderService(cartService, notifier)

	// Stale cart pruning; redis carts expire by TTL and memory carts die with the process
	if pruner, ok := persister.(cart.StalePruner); ok {
		cleanup := scheduler.NewCartCleanupScheduler(pruner, cfg.Cart.CleanupSchedule, cfg.Cart.TTL)
		if err := cleanup.Start(); err != nil {
			logger.Fatal("Failed to start cart cleanup scheduler", err)
		}
		defer cleanup.Stop()
	}

	r := router.NewRouter(
		controller.NewUserController(authService),
		controller.NewProductController(productService),
		controller.NewGiftController(productService),
		controller.NewCartController(cartService),
		controller.NewOrderController(orderService),
		controller.NewUploadController(images),
		controller.NewNotificationController(hub, cfg.CORS.AllowedOrigins),
		authMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
