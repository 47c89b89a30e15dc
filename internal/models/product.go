// internal/models/product.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Image       string         `json:"image" gorm:"size:500"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Product struct {
	BaseModel
	Name          string          `json:"name" gorm:"size:200;not null"`
	Title         string          `json:"title" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image         string          `json:"image" gorm:"size:500"`
	CategoryID    uint            `json:"category_id" gorm:"not null;index"`
	Rating        float64         `json:"rating" gorm:"default:0"`
	StockQuantity int             `json:"stock_quantity" gorm:"default:0"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relationships
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// Review is stored but has no write surface yet; product detail reads its average.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
	User    *User    `json:"-" gorm:"foreignKey:UserID"`
}
