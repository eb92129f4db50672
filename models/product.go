package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	Category    string    `gorm:"index" json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	CreatedByID uint      `gorm:"not null" json:"createdById"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Active      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InStock reports whether the requested quantity is available.
func (p *Product) InStock(quantity int) bool {
	return p.Quantity >= quantity
}

// ActiveProducts scopes queries to products that are not soft-deleted.
func ActiveProducts(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
