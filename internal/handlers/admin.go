// internal/handlers/admin.go
package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	adminService   *services.AdminService
	exportService  *services.ExportService
	storageService *services.StorageService
}

func NewAdminHandler(adminService *services.AdminService, exportService *services.ExportService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		exportService:  exportService,
		storageService: storageService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.adminService.GetDashboard()
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"users": users})
}

// GET /admin/categories
func (h *AdminHandler) GetCategories(c *gin.Context) {
	categories, err := h.adminService.ListCategories()
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /admin/categories/:id
func (h *AdminHandler) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyCategoryNotFound)
	if !ok {
		return
	}

	category, err := h.adminService.GetCategory(id)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, category)
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.adminService.CreateCategory(&req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryCreated),
		"id":       category.ID,
		"category": category,
	})
}

// PUT /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := idParam(c, "id", i18n.KeyCategoryNotFound)
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.adminService.UpdateCategory(id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryUpdated),
		"category": category,
	})
}

// DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyCategoryNotFound)
	if !ok {
		return
	}

	if err := h.adminService.DeleteCategory(id); err != nil {
		handleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCategoryDeleted)
}

// GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	params := productListParams(c)

	products, total, err := h.adminService.ListProducts(params)
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

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.adminService.CreateProduct(&req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"id":      product.ID,
		"product": product,
	})
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := idParam(c, "id", i18n.KeyProductNotFound)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.adminService.UpdateProduct(id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyProductNotFound)
	if !ok {
		return
	}

	if err := h.adminService.DeleteProduct(id); err != nil {
		handleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyProductDeleted)
}

// GET /admin/products/export
func (h *AdminHandler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.ExportProducts(&buf); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// POST /admin/products/import
func (h *AdminHandler) ImportProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.exportService.ImportProducts(file, header.Size)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImportCompleted),
		"result":  result,
	})
}

// POST /admin/uploads
func (h *AdminHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header.Size)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			handleError(c, err)
			return
		}
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Image upload failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", i18n.T(lang, i18n.KeyFileUploadFailed), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    result,
	})
}

// DELETE /admin/uploads/*key
func (h *AdminHandler) DeleteUpload(c *gin.Context) {
	if err := h.storageService.DeleteFile(c.Param("key")); err != nil {
		handleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyFileDeleted)
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders()
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id", i18n.KeyOrderNotFound)
	if !ok {
		return
	}

	order, err := h.adminService.GetOrderDetail(id)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := idParam(c, "id", i18n.KeyOrderNotFound)
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.adminService.UpdateOrderStatus(id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order_id": order.ID,
		"status":   order.Status,
	})
}
