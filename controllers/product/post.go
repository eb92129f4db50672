package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"required,min=10,max=1000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    *int    `json:"quantity" binding:"required,gte=0"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,url"`
	Featured    bool    `json:"featured"`
}

// CreateProduct creates a product owned by the calling admin.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		user := middleware.CurrentUser(c)
		product := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Quantity:    *req.Quantity,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			Featured:    req.Featured,
			CreatedByID: user.ID,
			Active:      true,
		}

		if err := db.Create(&product).Error; err != nil {
			response.DBError(c, err, "No product found with that ID")
			return
		}

		response.Success(c, http.StatusCreated, "Product created successfully", gin.H{
			"product": product,
		})
	}
}
