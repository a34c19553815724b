package adaptor

import (
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// ListCart handles GET /api/cart
func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := h.service.ListCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// AddToCart handles POST /api/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.AddToCart(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseCreated(w, "Added to cart", item)
}

// UpdateQuantity handles PATCH /api/cart/{itemId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	var req request.UpdateCartQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), userID, itemID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cart quantity")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", item)
}

// RemoveItem handles DELETE /api/cart/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, itemID); err != nil {
		handleServiceError(w, h.log, err, "remove cart item")
		return
	}

	utils.ResponseNoContent(w)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseNoContent(w)
}
