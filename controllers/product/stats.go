package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type CategoryStats struct {
	Category      string  `json:"category"`
	NumProducts   int64   `json:"numProducts"`
	AvgPrice      float64 `json:"avgPrice"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
	TotalQuantity int64   `json:"totalQuantity"`
}

// GetProductStats aggregates active products per category.
func GetProductStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats []CategoryStats
		err := db.Model(&models.Product{}).
			Scopes(models.ActiveProducts).
			Select(`category,
				COUNT(*) AS num_products,
				AVG(price) AS avg_price,
				MIN(price) AS min_price,
				MAX(price) AS max_price,
				SUM(quantity) AS total_quantity`).
			Group("category").
			Order("num_products DESC").
			Scan(&stats).Error
		if err != nil {
			response.InternalError(c, err, "Error getting product statistics")
			return
		}

		response.Success(c, http.StatusOK, "Product statistics retrieved successfully", gin.H{
			"stats": stats,
		})
	}
}
