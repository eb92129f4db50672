package orderControllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/logger"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// GetOrders lists orders: all of them for admins, own orders for everyone
// else. Supports status/paymentStatus filters and pagination.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		query := db.Model(&models.Order{})
		if !user.IsAdmin() {
			query = query.Where("user_id = ?", user.ID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if ps := c.Query("paymentStatus"); ps != "" {
			query = query.Where("payment_status = ?", ps)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.InternalError(c, err, "Error getting orders")
			return
		}

		var orders []models.Order
		if err := query.
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			response.InternalError(c, err, "Error getting orders")
			return
		}

		response.Success(c, http.StatusOK, "Orders retrieved successfully", gin.H{
			"results":     len(orders),
			"total":       total,
			"totalPages":  int(math.Ceil(float64(total) / float64(limit))),
			"currentPage": page,
			"orders":      orders,
		})
	}
}

// GetOrder returns one order. Only the owner or an admin may read it.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").Preload("User").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "Order not found")
			return
		}

		user := middleware.CurrentUser(c)
		if !user.IsAdmin() && order.UserID != user.ID {
			response.Error(c, http.StatusForbidden, "You do not have permission to view this order")
			return
		}

		response.Success(c, http.StatusOK, "Order retrieved successfully", gin.H{
			"order": order,
		})
	}
}

// CancelOrder cancels an order that has not shipped yet. Owner or admin only.
// Stock already decremented by a confirmed payment is not restored.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "Order not found")
			return
		}

		user := middleware.CurrentUser(c)
		if !user.IsAdmin() && order.UserID != user.ID {
			response.Error(c, http.StatusForbidden, "You do not have permission to cancel this order")
			return
		}

		if !order.CanCancel() {
			response.Error(c, http.StatusBadRequest,
				fmt.Sprintf("Order cannot be cancelled in %s status", order.Status))
			return
		}

		order.Status = models.OrderStatusCancelled
		if err := db.Save(&order).Error; err != nil {
			response.InternalError(c, err, "Error cancelling order")
			return
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			// Refund handling is manual for now.
			logger.L.Info("paid order cancelled", zap.Uint("order_id", order.ID))
		}

		broadcastOrderUpdate(&order)

		response.Success(c, http.StatusOK, "Order cancelled successfully", gin.H{
			"order": order,
		})
	}
}

// UpdateOrderStatus sets an order's status from the enumerated whitelist.
// Admin only.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid order status")
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			response.DBError(c, err, "Order not found")
			return
		}

		order.Status = models.OrderStatus(req.Status)
		if err := db.Save(&order).Error; err != nil {
			response.InternalError(c, err, "Error updating order status")
			return
		}

		if order.Status == models.OrderStatusCancelled && order.PaymentStatus == models.PaymentStatusPaid {
			logger.L.Info("paid order cancelled", zap.Uint("order_id", order.ID))
		}

		broadcastOrderUpdate(&order)

		response.Success(c, http.StatusOK, "Order status updated successfully", gin.H{
			"order": order,
		})
	}
}
