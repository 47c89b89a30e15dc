// internal/services/admin_service.go
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
	"github.com/minicart/minicart-backend/internal/utils"
)

const (
	recentOrdersLimit = 5
	trendMonths       = 6
)

type AdminService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"max=500"`
}

// Nil fields are left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image" validate:"omitempty,max=500"`
}

type CreateProductRequest struct {
	Name          string           `json:"name" validate:"notblank,max=200"`
	Title         string           `json:"title" validate:"notblank,max=200"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	Image         string           `json:"image" validate:"max=500"`
	CategoryID    *uint            `json:"category_id" validate:"required"`
	Rating        *float64         `json:"rating" validate:"omitempty,min=0,max=5"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
}

// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,notblank,max=200"`
	Title         *string          `json:"title" validate:"omitempty,notblank,max=200"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Image         *string          `json:"image" validate:"omitempty,max=500"`
	CategoryID    *uint            `json:"category_id"`
	Rating        *float64         `json:"rating" validate:"omitempty,min=0,max=5"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type AdminOrderSummary struct {
	OrderSummary
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type AdminOrderDetail struct {
	AdminOrderSummary
	Items []OrderLine `json:"items"`
}

type DashboardStats struct {
	TotalProducts   int64           `json:"total_products"`
	TotalCategories int64           `json:"total_categories"`
	TotalUsers      int64           `json:"total_users"`
	TotalOrders     int64           `json:"total_orders"`
	ActiveOrders    int64           `json:"active_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
}

type RecentOrder struct {
	ID          uint               `json:"id"`
	UserName    string             `json:"user_name"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type Dashboard struct {
	Stats         DashboardStats  `json:"stats"`
	RecentOrders  []RecentOrder   `json:"recent_orders"`
	Categories    []CategoryCount `json:"categories"`
	MonthlyOrders []MonthlyCount  `json:"monthly_orders"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Category Management
func (s *AdminService) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *AdminService) GetCategory(id uint) (*models.Category, error) {
	return s.findCategory(s.db, id)
}

func (s *AdminService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := validate(req, i18n.KeyCategoryNameRequired); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *AdminService) UpdateCategory(id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := validate(req, i18n.KeyCategoryNameRequired); err != nil {
		return nil, err
	}

	category, err := s.findCategory(s.db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
		updates["name"] = category.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
		updates["description"] = category.Description
	}
	if req.Image != nil {
		category.Image = *req.Image
		updates["image"] = category.Image
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}
	return category, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *AdminService) DeleteCategory(id uint) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		category, err := s.findCategory(tx, id)
		if err != nil {
			return err
		}

		var products int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if products > 0 {
			return newError(ErrConflict, i18n.KeyCategoryHasProducts)
		}

		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func (s *AdminService) findCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyCategoryNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// Product Management
func (s *AdminService) ListProducts(params ProductListParams) ([]models.Product, int64, error) {
	params.PaginationParams = utils.NormalizePagination(params.PaginationParams)
	query := filterProducts(s.db.Model(&models.Product{}), params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	query = utils.ApplyPagination(query.Preload("Category").Order("id ASC"), params.PaginationParams)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *AdminService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := validate(req, i18n.KeyValidationInvalid); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, newError(ErrValidation, i18n.KeyProductInvalidPrice)
	}
	if err := s.checkCategory(*req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
		CategoryID:  *req.CategoryID,
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *AdminService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := validate(req, i18n.KeyValidationInvalid); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
		updates["name"] = product.Name
	}
	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
		updates["title"] = product.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
		updates["description"] = product.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, newError(ErrValidation, i18n.KeyProductInvalidPrice)
		}
		product.Price = *req.Price
		updates["price"] = product.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
		updates["image"] = product.Image
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(*req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
		updates["category_id"] = product.CategoryID
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
		updates["rating"] = product.Rating
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
		updates["stock_quantity"] = product.StockQuantity
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return &product, nil
}

// DeleteProduct soft-deletes the product and drops it from every active cart.
// Order lines keep pointing at the soft-deleted row.
func (s *AdminService) DeleteProduct(id uint) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if isNotFound(err) {
				return newError(ErrNotFound, i18n.KeyProductNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		activeCarts := tx.Model(&models.ShoppingCart{}).Select("id").Where("status = ?", models.CartStatusActive)
		if err := tx.Where("product_id = ? AND cart_id IN (?)", product.ID, activeCarts).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to remove product from carts: %w", err)
		}

		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (s *AdminService) checkCategory(categoryID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return newError(ErrValidation, i18n.KeyProductInvalidCategory)
	}
	return nil
}

// User Management
func (s *AdminService) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// Order Management
func (s *AdminService) ListOrders() ([]AdminOrderSummary, error) {
	var orders []models.Order
	if err := s.db.Preload("User").Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	summaries := make([]AdminOrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, newAdminOrderSummary(&orders[i]))
	}
	return summaries, nil
}

func (s *AdminService) GetOrderDetail(id uint) (*AdminOrderDetail, error) {
	order, err := loadOrder(s.db, id)
	if err != nil {
		return nil, err
	}

	return &AdminOrderDetail{
		AdminOrderSummary: newAdminOrderSummary(order),
		Items:             newOrderDetail(order).Items,
	}, nil
}

func (s *AdminService) UpdateOrderStatus(id uint, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !req.Status.IsValid() {
		return nil, newError(ErrValidation, i18n.KeyOrderInvalidStatus)
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyOrderNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order.Status = req.Status
	if err := s.db.Model(&order).Update("status", order.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

func newAdminOrderSummary(o *models.Order) AdminOrderSummary {
	summary := AdminOrderSummary{
		OrderSummary: newOrderSummary(o),
		UserID:       o.UserID,
	}
	if o.User != nil {
		summary.UserName = o.User.Name
		summary.UserEmail = o.User.Email
	}
	return summary
}

// Dashboard Statistics
func (s *AdminService) GetDashboard() (*Dashboard, error) {
	return s.dashboardAt(time.Now().UTC())
}

func (s *AdminService) dashboardAt(now time.Time) (*Dashboard, error) {
	dashboard := &Dashboard{}
	stats := &dashboard.Stats
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{s.db.Model(&models.Product{}), &stats.TotalProducts},
		{s.db.Model(&models.Category{}), &stats.TotalCategories},
		{s.db.Model(&models.User{}), &stats.TotalUsers},
		{s.db.Model(&models.Order{}), &stats.TotalOrders},
		{s.db.Model(&models.Order{}).Where("status IN ?", models.OpenStatuses), &stats.ActiveOrders},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count dashboard stats: %w", err)
		}
	}

	var err error
	if stats.TotalRevenue, err = s.revenue(nil, nil); err != nil {
		return nil, err
	}
	nextMonth := monthStart.AddDate(0, 1, 0)
	if stats.MonthlyRevenue, err = s.revenue(&monthStart, &nextMonth); err != nil {
		return nil, err
	}

	var recent []models.Order
	if err := s.db.Preload("User").Order("created_at DESC, id DESC").Limit(recentOrdersLimit).Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	dashboard.RecentOrders = make([]RecentOrder, 0, len(recent))
	for _, o := range recent {
		row := RecentOrder{ID: o.ID, TotalAmount: o.TotalAmount, Status: o.Status, CreatedAt: o.CreatedAt}
		if o.User != nil {
			row.UserName = o.User.Name
		}
		dashboard.RecentOrders = append(dashboard.RecentOrders, row)
	}

	dashboard.Categories = []CategoryCount{}
	err = s.db.Model(&models.Category{}).
		Select("categories.name AS name, COUNT(products.id) AS count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.deleted_at IS NULL").
		Group("categories.id, categories.name").
		Order("categories.id ASC").
		Scan(&dashboard.Categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}

	dashboard.MonthlyOrders = make([]MonthlyCount, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var count int64
		if err := s.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count monthly orders: %w", err)
		}
		dashboard.MonthlyOrders = append(dashboard.MonthlyOrders, MonthlyCount{Month: start.Month().String(), Count: count})
	}

	return dashboard, nil
}

// revenue sums order totals in revenue statuses, optionally within [from, to).
func (s *AdminService) revenue(from, to *time.Time) (decimal.Decimal, error) {
	query := s.db.Model(&models.Order{}).Where("status IN ?", models.RevenueStatuses)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(total_amount), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	// sqlite sums decimal columns as REAL; amounts are stored to the cent
	return row.Total.Round(2), nil
}
