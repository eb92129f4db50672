package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// GetProductByID returns one active product. Soft-deleted products are not
// found.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Scopes(models.ActiveProducts).
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "No product found with that ID")
			return
		}
		response.Success(c, http.StatusOK, "Product retrieved successfully", gin.H{
			"product": product,
		})
	}
}
