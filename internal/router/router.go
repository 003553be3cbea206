package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/internal/app/controller"
	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	userController         *controller.UserController
	productController      *controller.ProductController
	giftController         *controller.GiftController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	uploadController       *controller.UploadController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	userController *controller.UserController,
	productController *controller.ProductController,
	giftController *controller.GiftController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userController:         userController,
		productController:      productController,
		giftController:         giftController,
		cartController:         cartController,
		orderController:        orderController,
		uploadController:       uploadController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bean and Vanilla API is running...")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Bean and Vanilla API is running",
		})
	})

	adminOnly := []gin.HandlerFunc{
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(model.RoleAdmin),
	}
	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(adminOnly), h)
	}

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", r.userController.Register)
			users.POST("/login", r.userController.Login)
			users.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.userController.Logout)
			users.GET("/profile", r.authMiddleware.Authenticate(), r.userController.GetProfile)
			users.PUT("/profile", r.authMiddleware.Authenticate(), r.userController.UpdateProfile)
		}

		products := api.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/search", r.productController.SearchProducts)
			products.GET("/filters", r.productController.GetFilters)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("", admin(r.productController.CreateProduct)...)
			products.POST("/upload-url", admin(r.uploadController.PresignProductImage)...)
			products.PUT("/:id", admin(r.productController.UpdateProduct)...)
			products.DELETE("/:id", admin(r.productController.DeleteProduct)...)
		}

		gifts := api.Group("/gifts")
		{
			gifts.GET("/curate", r.giftController.Curate)
		}

		session := api.Group("", r.authMiddleware.OptionalAuthenticate(), middleware.CartSession())
		{
			cart := session.Group("/cart")
			{
				cart.GET("", r.cartController.GetCart)
				cart.DELETE("", r.cartController.ClearCart)
				cart.POST("/items", r.cartController.AddToCart)
				cart.PUT("/items/:id", r.cartController.SetQty)
				cart.DELETE("/items/:id", r.cartController.RemoveFromCart)
				cart.PUT("/shipping", r.cartController.SaveShippingAddress)
				cart.PUT("/payment", r.cartController.SavePaymentMethod)
			}

			session.POST("/orders", r.orderController.PlaceOrder)
			session.GET("/notifications/ws", r.notificationController.Stream)
		}
	}

	return router
}

// corsMiddleware allows the configured origins. An empty list or "*" allows
// any origin without credentials.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.CartSessionHeader},
		ExposeHeaders: []string{"Content-Length", middleware.CartSessionHeader, middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
