package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type CheckStockRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

// CheckStock reports whether the requested quantity of a product is
// available. Used by the checkout flow before placing an order.
func CheckStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		var product models.Product
		if err := db.Scopes(models.ActiveProducts).
			First(&product, req.ProductID).Error; err != nil {
			response.DBError(c, err, "No product found with that ID")
			return
		}

		response.Success(c, http.StatusOK, "Stock check completed", gin.H{
			"productId":         req.ProductID,
			"quantity":          req.Quantity,
			"inStock":           product.InStock(req.Quantity),
			"availableQuantity": product.Quantity,
		})
	}
}
