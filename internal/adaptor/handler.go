package adaptor

import (
	"carwash-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Car          *CarHandler
	Building     *BuildingHandler
	Cart         *CartHandler
	Booking      *BookingHandler
	Wallet       *WalletHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Car:          NewCarHandler(service.Fleet, log),
		Building:     NewBuildingHandler(service.Building, log),
		Cart:         NewCartHandler(service.Cart, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Wallet:       NewWalletHandler(service.Wallet, log),
		Review:       NewReviewHandler(service.Review, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
