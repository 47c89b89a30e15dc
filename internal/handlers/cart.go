// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

// PUT /cart/update/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "id", i18n.KeyCartItemNotFound)
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.cartService.UpdateItem(userID, itemID, &req); err != nil {
		handleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartItemUpdated)
}

// DELETE /cart/remove/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "id", i18n.KeyCartItemNotFound)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(userID, itemID); err != nil {
		handleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartItemRemoved)
}
