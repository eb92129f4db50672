package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/stockroomhq/inventory-api/controllers/order"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints, including the
// two payment confirmation paths.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, gateway *payment.Client, cfg *config.Config) {
	orders := api.Group("/orders")
	{
		// Confirmation paths: client redirect and provider webhook.
		orders.GET("/verify-payment", orderControllers.VerifyPayment(db, gateway))
		orders.POST("/webhook",
			middleware.PaystackWebhookAuth(cfg.PaystackSecretKey),
			orderControllers.HandlePaymentWebhook(db),
		)
	}

	protected := orders.Group("")
	protected.Use(middleware.Protect(db, cfg))
	{
		protected.POST("", orderControllers.CreateOrder(db, gateway, cfg))
		protected.GET("", orderControllers.GetOrders(db))
		protected.GET("/:id", orderControllers.GetOrder(db))
		protected.POST("/:id/cancel", orderControllers.CancelOrder(db))
	}

	admin := protected.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.PATCH("/:id/status", orderControllers.UpdateOrderStatus(db))
		admin.GET("/stats/all", orderControllers.GetOrderStats(db))
		admin.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
