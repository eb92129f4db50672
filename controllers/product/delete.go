package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// DeleteProduct soft-deletes a product: it disappears from default queries
// but stays addressable by existing orders.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Scopes(models.ActiveProducts).
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "No product found with that ID")
			return
		}

		user := middleware.CurrentUser(c)
		if !user.IsAdmin() && product.CreatedByID != user.ID {
			response.Error(c, http.StatusForbidden, "You do not have permission to delete this product")
			return
		}

		if err := db.Model(&product).Update("active", false).Error; err != nil {
			response.InternalError(c, err, "Error deleting product")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
