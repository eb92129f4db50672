package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,min=10,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	Featured    *bool    `json:"featured"`
}

// UpdateProduct applies a partial update. Only the owner or an admin may
// modify a product.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Scopes(models.ActiveProducts).
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "No product found with that ID")
			return
		}

		user := middleware.CurrentUser(c)
		if !user.IsAdmin() && product.CreatedByID != user.ID {
			response.Error(c, http.StatusForbidden, "You do not have permission to update this product")
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.Featured != nil {
			updates["featured"] = *req.Featured
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				response.InternalError(c, err, "Error updating product")
				return
			}
		}

		response.Success(c, http.StatusOK, "Product updated successfully", gin.H{
			"product": product,
		})
	}
}
