// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyCategoryNotFound)
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(id)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, category)
}

// GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	params := productListParams(c)

	products, total, err := h.catalogService.ListProducts(params)
	if err != nil {
		handleError(c, err)
		return
	}

	result := utils.CreatePaginationResult(total, params.PaginationParams)
	utils.SetPaginationHeaders(c, result)
	utils.SuccessResponse(c, gin.H{
		"products":     products,
		"total":        result.Total,
		"pages":        result.Pages,
		"current_page": result.CurrentPage,
		"per_page":     result.PerPage,
	})
}

// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyProductNotFound)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// productListParams reads page, per_page, search and category_id. An
// unparsable category_id is ignored.
func productListParams(c *gin.Context) services.ProductListParams {
	params := services.ProductListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64); err == nil {
			id := uint(categoryID)
			params.CategoryID = &id
		}
	}

	return params
}
