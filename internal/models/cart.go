// internal/models/cart.go
package models

import (
	"github.com/shopspring/decimal"
)

type ShoppingCart struct {
	BaseModel
	UserID uint       `json:"user_id" gorm:"not null;index:idx_shopping_carts_user_status"`
	Status CartStatus `json:"status" gorm:"type:varchar(20);default:'active';index:idx_shopping_carts_user_status"`

	// Relationships
	User  *User      `json:"-" gorm:"foreignKey:UserID"`
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

type CartItem struct {
	BaseModel
	CartID      uint            `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID   uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	PriceAtTime decimal.Decimal `json:"price_at_time" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Cart    *ShoppingCart `json:"-" gorm:"foreignKey:CartID"`
	Product *Product      `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// LineTotal is quantity times the snapshotted price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
