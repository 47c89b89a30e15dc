// internal/services/export_service.go
package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
)

const productSheet = "Products"

var productColumns = []string{
	"ID", "Name", "Title", "Description", "Price", "Image",
	"CategoryID", "Category", "Rating", "StockQuantity", "CreatedAt",
}

// ExportService moves the product catalog in and out of .xlsx workbooks.
type ExportService struct {
	db    *gorm.DB
	admin *AdminService
}

type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

func NewExportService(db *gorm.DB, admin *AdminService) *ExportService {
	return &ExportService{db: db, admin: admin}
}

func (s *ExportService) ExportProducts(w io.Writer) error {
	var products []models.Product
	if err := s.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(productSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, column := range productColumns {
		header.AddCell().SetValue(column)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.CategoryID)
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		row.AddCell().SetValue(categoryName)
		row.AddCell().SetValue(p.Rating)
		row.AddCell().SetValue(p.StockQuantity)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ImportProducts reads a workbook laid out like ExportProducts. Rows with an
// ID update that product, rows without one create a product, and rows that
// fail to parse or validate are skipped.
func (s *ExportService) ImportProducts(r io.ReaderAt, size int64) (*ImportResult, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, newError(ErrValidation, i18n.KeyFileInvalidType)
	}
	if len(file.Sheets) == 0 || len(file.Sheets[0].Rows) < 2 {
		return nil, newError(ErrValidation, i18n.KeyImportEmpty)
	}

	result := &ImportResult{}
	for _, row := range file.Sheets[0].Rows[1:] {
		if row == nil {
			continue
		}
		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		update, err := parseProductRow(get)
		if err != nil {
			result.Skipped++
			continue
		}

		if idText := get(0); idText != "" {
			id, err := strconv.ParseUint(idText, 10, 64)
			if err != nil {
				result.Skipped++
				continue
			}
			if _, err := s.admin.UpdateProduct(uint(id), update); err != nil {
				result.Skipped++
				continue
			}
			result.Updated++
			continue
		}

		create := &CreateProductRequest{
			Price:         update.Price,
			CategoryID:    update.CategoryID,
			Rating:        update.Rating,
			StockQuantity: update.StockQuantity,
		}
		if update.Name != nil {
			create.Name = *update.Name
		}
		if update.Title != nil {
			create.Title = *update.Title
		}
		if update.Description != nil {
			create.Description = *update.Description
		}
		if update.Image != nil {
			create.Image = *update.Image
		}
		if _, err := s.admin.CreateProduct(create); err != nil {
			result.Skipped++
			continue
		}
		result.Created++
	}

	return result, nil
}

// parseProductRow maps the columns of one sheet row onto a patch. Empty
// cells stay nil.
func parseProductRow(get func(int) string) (*UpdateProductRequest, error) {
	req := &UpdateProductRequest{}
	text := func(index int) *string {
		if v := get(index); v != "" {
			return &v
		}
		return nil
	}

	req.Name = text(1)
	req.Title = text(2)
	req.Description = text(3)
	req.Image = text(5)

	if v := get(4); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		req.Price = &price
	}
	if v := get(6); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		categoryID := uint(id)
		req.CategoryID = &categoryID
	}
	if v := get(8); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		req.Rating = &rating
	}
	if v := get(9); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.StockQuantity = &stock
	}

	return req, nil
}
