package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/stockroomhq/inventory-api/controllers/product"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
)

// SetupProductRoutes registers all "/api/products/*" endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	products := api.Group("/products")
	{
		// Public catalog
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}

	protected := products.Group("")
	protected.Use(middleware.Protect(db, cfg))
	{
		protected.POST("/check-stock", productControllers.CheckStock(db))
	}

	admin := protected.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("", productControllers.CreateProduct(db))
		admin.PATCH("/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/:id", productControllers.DeleteProduct(db))
		admin.POST("/upload-images", productControllers.UploadProductImages(cfg))
		admin.GET("/stats/categories", productControllers.GetProductStats(db))
		admin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
	}
}
