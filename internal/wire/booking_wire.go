package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", cartHandler.ListCart)
		r.Post("/", cartHandler.AddToCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Patch("/{itemId}", cartHandler.UpdateQuantity)
		r.Delete("/{itemId}", cartHandler.RemoveItem)
	})
}

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	reviewHandler *adaptor.ReviewHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/cancel-reasons", bookingHandler.CancelReasons)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/checkout", bookingHandler.Checkout)
		r.Get("/api/bookings", bookingHandler.ListBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Post("/api/bookings/{id}/cancel", bookingHandler.Cancel)
		r.Post("/api/bookings/{id}/review", reviewHandler.CreateReview)
		r.Get("/api/reviews", reviewHandler.GetUserReviews)

		// ==================== PROVIDER ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleProvider, entity.RoleAdmin))

			r.Post("/api/bookings/{id}/advance", bookingHandler.Advance)
			r.Post("/api/bookings/{id}/reject", bookingHandler.Reject)
		})
	})
}
