// internal/services/catalog_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
	"github.com/minicart/minicart-backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type ProductListParams struct {
	utils.PaginationParams
	CategoryID *uint `json:"category_id,omitempty"`
}

type ProductSummary struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	CategoryID    uint            `json:"category_id"`
	Rating        float64         `json:"rating"`
	StockQuantity int             `json:"stock_quantity"`
}

type ProductDetail struct {
	ProductSummary
	CategoryName string `json:"category_name"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyCategoryNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// ListProducts returns one page of products. A page past the end yields an empty list.
func (s *CatalogService) ListProducts(params ProductListParams) ([]ProductSummary, int64, error) {
	params.PaginationParams = utils.NormalizePagination(params.PaginationParams)
	query := filterProducts(s.db.Model(&models.Product{}), params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query.Order("id ASC"), params.PaginationParams).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, newProductSummary(&products[i]))
	}
	return summaries, total, nil
}

func (s *CatalogService) GetProduct(id uint) (*ProductDetail, error) {
	var product models.Product
	if err := s.db.Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}).First(&product, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, i18n.KeyProductNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	detail := &ProductDetail{ProductSummary: newProductSummary(&product)}
	if product.Category != nil {
		detail.CategoryName = product.Category.Name
	}

	rating, err := s.averageRating(product.ID)
	if err != nil {
		return nil, err
	}
	if rating != nil {
		detail.Rating = *rating
	}

	return detail, nil
}

// averageRating is nil when the product has no reviews.
func (s *CatalogService) averageRating(productID uint) (*float64, error) {
	var row struct {
		Count int64
		Avg   float64
	}
	err := s.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	if row.Count == 0 {
		return nil, nil
	}
	return &row.Avg, nil
}

// filterProducts applies the category and case-insensitive name/title search filters.
func filterProducts(query *gorm.DB, params ProductListParams) *gorm.DB {
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(title) LIKE ?", term, term)
	}
	return query
}

func newProductSummary(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:            p.ID,
		Name:          p.Name,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		Rating:        p.Rating,
		StockQuantity: p.StockQuantity,
	}
}
