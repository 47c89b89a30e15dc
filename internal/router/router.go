// internal/router/router.go
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/config"
	"github.com/minicart/minicart-backend/internal/handlers"
	"github.com/minicart/minicart-backend/internal/middleware"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	tokens := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	// Initialize services
	storageService, err := services.NewStorageService(cfg.AWS, cfg.Upload)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(db, tokens)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	adminService := services.NewAdminService(db)
	exportService := services.NewExportService(db, adminService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(adminService, exportService, storageService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Catalog routes (public)
	categories := r.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
	}

	products := r.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	// Cart routes
	cart := r.Group("/cart")
	cart.Use(middleware.AuthRequired(tokens))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/add", cartHandler.AddItem)
		cart.PUT("/update/:id", cartHandler.UpdateItem)
		cart.DELETE("/remove/:id", cartHandler.RemoveItem)
	}

	// Order routes
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(tokens))
	{
		orders.POST("/place", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	// Admin login is public; everything else under /admin needs an admin token
	r.POST("/admin/login", authHandler.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(tokens), middleware.AdminRequired(authService))
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/users", adminHandler.GetUsers)

		// Category management
		adminCategories := admin.Group("/categories")
		{
			adminCategories.GET("", adminHandler.GetCategories)
			adminCategories.POST("", adminHandler.CreateCategory)
			adminCategories.GET("/:id", adminHandler.GetCategory)
			adminCategories.PUT("/:id", adminHandler.UpdateCategory)
			adminCategories.DELETE("/:id", adminHandler.DeleteCategory)
		}

		// Product management
		adminProducts := admin.Group("/products")
		{
			adminProducts.GET("", adminHandler.GetProducts)
			adminProducts.POST("", adminHandler.CreateProduct)
			adminProducts.GET("/export", adminHandler.ExportProducts)
			adminProducts.POST("/import", adminHandler.ImportProducts)
			adminProducts.PUT("/:id", adminHandler.UpdateProduct)
			adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
		}

		// Order management
		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", adminHandler.GetOrders)
			adminOrders.GET("/:id", adminHandler.GetOrder)
			adminOrders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
		}

		admin.POST("/uploads", adminHandler.UploadImage)
		admin.DELETE("/uploads/*key", adminHandler.DeleteUpload)
	}

	// Locally stored images
	if dir := storageService.LocalDir(); dir != "" && strings.HasPrefix(cfg.Upload.BaseURL, "/") {
		r.Static(cfg.Upload.BaseURL, dir)
	}

	return r, nil
}
