// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders/place
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.PlaceOrder(userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyOrderPlaced),
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "id", i18n.KeyOrderNotFound)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(userID, orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
