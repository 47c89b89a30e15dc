// internal/services/cart_service.go
package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/database"
	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
)

// MaxCartQuantity bounds a single cart line.
const MaxCartQuantity = 999

type CartService struct {
	db *gorm.DB
}

// Pointer fields tell "absent" apart from zero.
type AddCartItemRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CartProduct struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

type CartLine struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	Product     CartProduct     `json:"product"`
}

type CartView struct {
	Items []CartLine      `json:"cart_items"`
	Total decimal.Decimal `json:"total"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart lists the caller's active cart. A user without one gets an empty cart.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Total: decimal.Zero}

	cart, err := findActiveCart(s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}

	var items []models.CartItem
	err = s.db.Preload("Product", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}

	for _, item := range items {
		line := CartLine{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		}
		if item.Product != nil {
			line.Product = CartProduct{
				Name:     item.Product.Name,
				Price:    item.Product.Price,
				ImageURL: item.Product.Image,
			}
		}
		view.Items = append(view.Items, line)
		view.Total = view.Total.Add(item.LineTotal())
	}

	return view, nil
}

// AddItem puts a product in the caller's active cart, creating the cart on first use.
// Adding a product already in the cart increases that line's quantity.
func (s *CartService) AddItem(userID uint, req *AddCartItemRequest) (*models.CartItem, error) {
	if req.ProductID == nil || *req.ProductID == 0 {
		return nil, newError(ErrValidation, i18n.KeyProductIDRequired)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 || quantity > MaxCartQuantity {
		return nil, newError(ErrValidation, i18n.KeyCartInvalidQuantity)
	}

	var item models.CartItem
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, *req.ProductID).Error; err != nil {
			if isNotFound(err) {
				return newError(ErrNotFound, i18n.KeyProductNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		cart, err := findOrCreateActiveCart(tx, userID)
		if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case err == nil:
			if quantity > MaxCartQuantity-item.Quantity {
				return newError(ErrValidation, i18n.KeyCartInvalidQuantity)
			}
			item.Quantity += quantity
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		case isNotFound(err):
			item = models.CartItem{
				CartID:      cart.ID,
				ProductID:   product.ID,
				Quantity:    quantity,
				PriceAtTime: product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to add cart item: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateItem overwrites the quantity of one of the caller's cart lines.
func (s *CartService) UpdateItem(userID, itemID uint, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if req.Quantity == nil || *req.Quantity <= 0 || *req.Quantity > MaxCartQuantity {
		return nil, newError(ErrValidation, i18n.KeyCartInvalidQuantity)
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = *req.Quantity
	if err := s.db.Model(item).Update("quantity", item.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return item, nil
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.Preload("Cart").First(&item, itemID).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyCartItemNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, newError(ErrForbidden, i18n.KeyCartItemForbidden)
	}

	return &item, nil
}

// findActiveCart returns nil when the user has no active cart.
func findActiveCart(db *gorm.DB, userID uint) (*models.ShoppingCart, error) {
	var cart models.ShoppingCart
	err := db.Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		Order("id DESC").First(&cart).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}

func findOrCreateActiveCart(tx *gorm.DB, userID uint) (*models.ShoppingCart, error) {
	cart, err := findActiveCart(tx, userID)
	if err != nil || cart != nil {
		return cart, err
	}

	cart = &models.ShoppingCart{UserID: userID, Status: models.CartStatusActive}
	if err := tx.Create(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}
