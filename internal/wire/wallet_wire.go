package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWallet(r chi.Router, walletHandler *adaptor.WalletHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/wallet", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", walletHandler.GetBalance)
		r.Get("/transactions", walletHandler.ListTransactions)
		r.Post("/top-up", walletHandler.TopUp)
	})
}

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", notificationHandler.List)
		r.Post("/{id}/read", notificationHandler.MarkAsRead)
	})
}
