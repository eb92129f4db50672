package orderControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
	"github.com/stockroomhq/inventory-api/pkg/logger"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// webhookEvent is the provider's event envelope.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
	} `json:"data"`
}

// markOrderPaid applies the confirmed-payment transition and decrements
// stock for each line item. Both confirmation paths funnel through here.
func markOrderPaid(db *gorm.DB, order *models.Order, transactionID string) error {
	now := time.Now()
	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = models.OrderStatusProcessing
	order.PaymentDetails.TransactionID = transactionID
	order.PaymentDetails.PaymentDate = &now

	if err := db.Save(order).Error; err != nil {
		return err
	}

	for _, item := range order.Items {
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			logger.L.Warn("product missing during stock update",
				zap.Uint("product_id", item.ProductID), zap.Uint("order_id", order.ID))
			continue
		}
		product.Quantity -= item.Quantity
		if err := db.Save(&product).Error; err != nil {
			return err
		}
	}
	return nil
}

// VerifyPayment is the client-initiated confirmation path after redirect
// back from the payment page.
func VerifyPayment(db *gorm.DB, gateway *payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Query("reference")
		if reference == "" {
			response.Error(c, http.StatusBadRequest, "Payment reference is required")
			return
		}

		tx, err := gateway.Verify(c.Request.Context(), reference)
		if err != nil {
			response.InternalError(c, err, "Error verifying payment")
			return
		}
		if tx.Status != "success" {
			response.Error(c, http.StatusBadRequest, "Payment was not successful")
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			First(&order, "pay_reference = ?", reference).Error; err != nil {
			response.DBError(c, err, "Order not found")
			return
		}

		if err := markOrderPaid(db, &order, strconv.FormatInt(tx.ID, 10)); err != nil {
			response.InternalError(c, err, "Error verifying payment")
			return
		}

		broadcastOrderUpdate(&order)

		response.Success(c, http.StatusOK, "Payment verified successfully", gin.H{
			"order": order,
		})
	}
}

// HandlePaymentWebhook is the server-to-server confirmation path. The
// signature is checked by middleware; this handler always acknowledges with
// 200 so the provider does not retry, even when processing fails internally.
func HandlePaymentWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ack := func() { c.JSON(http.StatusOK, gin.H{"received": true}) }

		var event webhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			logger.L.Error("malformed webhook payload", zap.Error(err))
			ack()
			return
		}

		switch event.Event {
		case "charge.success":
			var order models.Order
			if err := db.Preload("Items").
				First(&order, "pay_reference = ?", event.Data.Reference).Error; err != nil {
				logger.L.Error("webhook for unknown reference",
					zap.String("reference", event.Data.Reference), zap.Error(err))
				ack()
				return
			}
			if err := markOrderPaid(db, &order, strconv.FormatInt(event.Data.ID, 10)); err != nil {
				logger.L.Error("webhook order update failed",
					zap.Uint("order_id", order.ID), zap.Error(err))
				ack()
				return
			}
			broadcastOrderUpdate(&order)

		case "charge.failed":
			var order models.Order
			if err := db.First(&order, "pay_reference = ?", event.Data.Reference).Error; err == nil {
				order.PaymentStatus = models.PaymentStatusFailed
				if err := db.Save(&order).Error; err != nil {
					logger.L.Error("webhook order update failed",
						zap.Uint("order_id", order.ID), zap.Error(err))
				}
			}
		}

		ack()
	}
}
