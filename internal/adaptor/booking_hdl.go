package adaptor

import (
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Checkout handles POST /api/checkout (protected)
func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Checkout(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", result)
}

// ListBookings handles GET /api/bookings?status=&page=&per_page= (protected)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	req := request.BookingListRequest{PaginatedRequest: pageFromQuery(r)}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	bookings, err := h.service.ListBookings(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Cancel handles POST /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CancelBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Cancel(r.Context(), userID, bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// CancelReasons handles GET /api/cancel-reasons (public)
func (h *BookingHandler) CancelReasons(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.CancelReasons())
}

// ==================== PROVIDER METHODS ====================

// Advance handles POST /api/bookings/{id}/advance (provider only)
func (h *BookingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.AdvanceBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Advance(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "advance booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// Reject handles POST /api/bookings/{id}/reject (provider only)
func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RejectBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Reject(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reject booking")
		return
	}

	utils.ResponseSuccess(w, "Booking rejected", booking)
}
