package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/otp", authHandler.RequestOTP)
		r.Post("/verify", authHandler.VerifyOTP)

		// ==================== PROTECTED ROUTES ====================
		r.With(auth).Post("/logout", authHandler.Logout)
	})
}

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/profile", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
		r.Get("/notifications", userHandler.GetNotificationSettings)
		r.Put("/notifications", userHandler.UpdateNotificationSettings)
	})
}
