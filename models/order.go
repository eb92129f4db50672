package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // created at checkout, payment not confirmed
	OrderStatusProcessing OrderStatus = "processing" // payment confirmed, being prepared
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is embedded in Order; every field is required at creation.
type ShippingAddress struct {
	Street  string `gorm:"not null" json:"street"`
	City    string `gorm:"not null" json:"city"`
	State   string `gorm:"not null" json:"state"`
	ZipCode string `gorm:"not null" json:"zipCode"`
	Country string `gorm:"not null" json:"country"`
}

// PaymentDetails correlates the order with the payment provider's
// transaction. Reference is the lookup key for verify and webhook paths.
type PaymentDetails struct {
	Reference        string     `gorm:"index" json:"reference"`
	TransactionID    string     `json:"transactionId"`
	AuthorizationURL string     `json:"authorizationUrl"`
	PaymentDate      *time.Time `json:"paymentDate"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"userId"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `gorm:"not null" json:"totalAmount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending';index" json:"paymentStatus"`
	PaymentMethod   string          `gorm:"default:'paystack'" json:"paymentMethod"`
	PaymentDetails  PaymentDetails  `gorm:"embedded;embeddedPrefix:pay_" json:"paymentDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem snapshots name and price at order time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// CanCancel reports whether the order may still be cancelled.
// Shipped, delivered and cancelled orders are terminal for cancellation.
func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return true
}
