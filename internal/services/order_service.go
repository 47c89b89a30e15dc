// internal/services/order_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/database"
	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
)

type OrderService struct {
	db *gorm.DB
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

type OrderSummary struct {
	ID              uint               `json:"id"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Status          models.OrderStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	ShippingAddress string             `json:"shipping_address"`
	BillingAddress  string             `json:"billing_address"`
}

type OrderLineProduct struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type OrderLine struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Product   OrderLineProduct `json:"product"`
}

type OrderDetail struct {
	OrderSummary
	Items []OrderLine `json:"items"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder converts the caller's active cart into a pending order.
// The order, its lines and the cart status change commit together or not at all.
func (s *OrderService) PlaceOrder(userID uint, req *PlaceOrderRequest) (*models.Order, error) {
	shipping := strings.TrimSpace(req.ShippingAddress)
	if shipping == "" {
		return nil, newError(ErrValidation, i18n.KeyOrderShippingRequired)
	}
	billing := strings.TrimSpace(req.BillingAddress)
	if billing == "" {
		billing = shipping
	}

	var order *models.Order
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		cart, err := findActiveCart(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return newError(ErrValidation, i18n.KeyCartEmpty)
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch cart items: %w", err)
		}
		if len(items) == 0 {
			return newError(ErrValidation, i18n.KeyCartEmpty)
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.LineTotal())
		}

		order = &models.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			ShippingAddress: shipping,
			BillingAddress:  billing,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		lines := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			lines = append(lines, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.PriceAtTime,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = lines

		if err := tx.Model(cart).Update("status", models.CartStatusCheckedOut).Error; err != nil {
			return fmt.Errorf("failed to check out cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(userID uint) ([]OrderSummary, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, newOrderSummary(&orders[i]))
	}
	return summaries, nil
}

func (s *OrderService) GetOrder(userID, orderID uint) (*OrderDetail, error) {
	order, err := loadOrder(s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, newError(ErrForbidden, i18n.KeyOrderForbidden)
	}
	return newOrderDetail(order), nil
}

// loadOrder fetches an order with its lines. Products are loaded even when
// soft-deleted so old orders keep their names and images.
func loadOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		First(&order, orderID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyOrderNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func newOrderSummary(o *models.Order) OrderSummary {
	return OrderSummary{
		ID:              o.ID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
	}
}

func newOrderDetail(o *models.Order) *OrderDetail {
	detail := &OrderDetail{
		OrderSummary: newOrderSummary(o),
		Items:        make([]OrderLine, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		line := OrderLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			line.Product = OrderLineProduct{Name: item.Product.Name, Image: item.Product.Image}
		}
		detail.Items = append(detail.Items, line)
	}
	return detail
}
