package orderControllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type StatusStats struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Count         int64   `json:"count"`
	TotalAmount   float64 `json:"totalAmount"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// GetOrderStats aggregates orders by status/payment status and computes paid
// revenue per month for the last six months.
func GetOrderStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats []StatusStats
		err := db.Model(&models.Order{}).
			Select("status, payment_status, COUNT(*) AS count, SUM(total_amount) AS total_amount").
			Group("status").
			Group("payment_status").
			Order("status, payment_status").
			Scan(&stats).Error
		if err != nil {
			response.InternalError(c, err, "Error getting order statistics")
			return
		}

		// Monthly buckets are computed in Go; month extraction in SQL is not
		// portable across the Postgres and SQLite dialects we run on.
		since := time.Now().AddDate(0, -6, 0)
		var paid []models.Order
		err = db.Model(&models.Order{}).
			Select("total_amount, created_at").
			Where("payment_status = ? AND created_at >= ?", models.PaymentStatusPaid, since).
			Find(&paid).Error
		if err != nil {
			response.InternalError(c, err, "Error getting order statistics")
			return
		}

		buckets := make(map[string]*MonthlyRevenue)
		for _, o := range paid {
			key := o.CreatedAt.Format("2006-01")
			b, ok := buckets[key]
			if !ok {
				b = &MonthlyRevenue{Month: key}
				buckets[key] = b
			}
			b.Revenue += o.TotalAmount
			b.Count++
		}

		monthly := make([]MonthlyRevenue, 0, len(buckets))
		for _, b := range buckets {
			monthly = append(monthly, *b)
		}
		sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

		response.Success(c, http.StatusOK, "Order statistics retrieved successfully", gin.H{
			"stats":          stats,
			"monthlyRevenue": monthly,
		})
	}
}
