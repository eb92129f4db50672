package orderControllers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
	"github.com/stockroomhq/inventory-api/pkg/logger"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

const (
	taxRate           = 0.10
	shippingFee       = 10.0
	freeShippingAbove = 50.0
)

type OrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

type ShippingAddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type CreateOrderRequest struct {
	Products        []OrderItemRequest     `json:"products" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
}

// CreateOrder validates the cart against current stock, persists a pending
// order and initializes a checkout session with the payment provider. Stock
// is not decremented here; that happens on payment confirmation.
func CreateOrder(db *gorm.DB, gateway *payment.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		user := middleware.CurrentUser(c)

		var orderItems []models.OrderItem
		var totalAmount float64

		shippingCost := shippingFee
		if totalAmount > freeShippingAbove {
			shippingCost = 0
		}

		for _, item := range req.Products {
			var product models.Product
			if err := db.Scopes(models.ActiveProducts).
				First(&product, item.ProductID).Error; err != nil {
				response.Error(c, http.StatusNotFound,
					fmt.Sprintf("Product not found with ID: %d", item.ProductID))
				return
			}
			if !product.InStock(item.Quantity) {
				response.Error(c, http.StatusBadRequest,
					fmt.Sprintf("Not enough stock for product: %s. Available: %d", product.Name, product.Quantity))
				return
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})
			totalAmount += product.Price * float64(item.Quantity)
		}

		taxAmount := totalAmount * taxRate
		finalAmount := totalAmount + taxAmount + shippingCost

		order := models.Order{
			UserID:      user.ID,
			Items:       orderItems,
			TotalAmount: totalAmount,
			ShippingAddress: models.ShippingAddress{
				Street:  req.ShippingAddress.Street,
				City:    req.ShippingAddress.City,
				State:   req.ShippingAddress.State,
				ZipCode: req.ShippingAddress.ZipCode,
				Country: req.ShippingAddress.Country,
			},
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: "paystack",
		}
		if err := db.Create(&order).Error; err != nil {
			response.InternalError(c, err, "Error creating order")
			return
		}

		reference := fmt.Sprintf("order_%d_%s", order.ID, uuid.NewString())
		callbackURL := fmt.Sprintf("%s/orders/confirm/?reference=%s", cfg.FrontendURL, reference)

		tx, err := gateway.Initialize(c.Request.Context(), payment.InitializeRequest{
			Email:       user.Email,
			Amount:      int64(math.Round(finalAmount * 100)),
			Reference:   reference,
			CallbackURL: callbackURL,
			Metadata: map[string]string{
				"orderId": fmt.Sprint(order.ID),
				"userId":  fmt.Sprint(user.ID),
			},
		})
		if err != nil {
			// The order stays pending without a payment URL.
			logger.L.Error("payment initialization failed",
				zap.Uint("order_id", order.ID), zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "Error creating order")
			return
		}

		order.PaymentDetails.Reference = reference
		order.PaymentDetails.AuthorizationURL = tx.AuthorizationURL
		if err := db.Save(&order).Error; err != nil {
			response.InternalError(c, err, "Error creating order")
			return
		}

		response.Success(c, http.StatusCreated, "Order created successfully", gin.H{
			"order":      order,
			"paymentUrl": tx.AuthorizationURL,
		})
	}
}
