package productControllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// Column whitelist for the sort parameter.
var sortableColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"price":      "price",
	"name":       "name",
	"quantity":   "quantity",
}

// GetProducts lists active products with search, filtering, sorting and
// pagination.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		category := c.Query("category")
		featured := c.Query("featured")
		minPriceStr := c.Query("minPrice")
		maxPriceStr := c.Query("maxPrice")

		sortBy, ok := sortableColumns[c.DefaultQuery("sort", "created_at")]
		if !ok {
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		query := db.Model(&models.Product{}).Scopes(models.ActiveProducts)

		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
				pattern, pattern, pattern,
			)
		}
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if featured != "" {
			f, err := strconv.ParseBool(featured)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid featured value")
				return
			}
			query = query.Where("featured = ?", f)
		}
		if minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid minPrice")
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "Invalid maxPrice")
				return
			}
			query = query.Where("price <= ?", mp)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.InternalError(c, err, "Error getting products")
			return
		}

		var products []models.Product
		if err := query.
			Order(sortBy + " " + sortOrder).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			response.InternalError(c, err, "Error getting products")
			return
		}

		response.Success(c, http.StatusOK, "Products retrieved successfully", gin.H{
			"results":     len(products),
			"total":       total,
			"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
			"currentPage": page,
			"products":    products,
		})
	}
}
