// internal/models/order.go
package models

import (
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	UserID          uint            `json:"user_id" gorm:"not null;index"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text"`
	BillingAddress  string          `json:"billing_address" gorm:"type:text"`

	// Relationships
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Order   *Order   `json:"-" gorm:"foreignKey:OrderID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
