package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/controllers"
	"github.com/voltline/voltline-api/middleware"
	"github.com/voltline/voltline-api/models"
	"github.com/voltline/voltline-api/services"
)

func main() {
	log.Println("Starting Voltline API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.District{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// S3 and SES are optional; endpoints that need them report
	// STORAGE_UNAVAILABLE / skip email when unconfigured
	if _, err := services.InitS3Service(); err != nil {
		log.Printf("S3 service not available: %v", err)
	}
	if _, err := services.InitEmailService(); err != nil {
		log.Printf("Email service not available: %v", err)
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and all route groups
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		// Public storefront
		api.GET("/products", controllers.ListProducts)
		api.GET("/products/:id", controllers.GetProduct)
		api.GET("/categories", controllers.ListCategories)
		api.GET("/categories/:id", controllers.GetCategory)
		api.GET("/districts", controllers.ListDistricts)
		api.GET("/banners", controllers.ListBanners)
		api.GET("/stats", controllers.GetStats)

		// Authenticated customer routes
		authed := api.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			authed.POST("/orders", controllers.CreateOrder)
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
		}

		// Admin back-office
		admin := api.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireAdmin())
		{
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)
			admin.GET("/products/low-stock", controllers.ListLowStockProducts)
			admin.GET("/products/export", controllers.ExportProducts)

			admin.POST("/categories", controllers.CreateCategory)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			admin.POST("/districts", controllers.CreateDistrict)
			admin.PUT("/districts/:id", controllers.UpdateDistrict)
			admin.DELETE("/districts/:id", controllers.DeleteDistrict)

			admin.GET("/banners", controllers.ListAllBanners)
			admin.POST("/banners", controllers.UploadBanner)
			admin.PUT("/banners/:id", controllers.UpdateBanner)
			admin.DELETE("/banners/:id", controllers.DeleteBanner)

			admin.GET("/orders", controllers.ListAdminOrders)
			admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.PUT("/orders/:id/payment", controllers.UpdatePaymentStatus)

			admin.GET("/stats", controllers.GetAdminStats)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Voltline API is running",
	})
}
