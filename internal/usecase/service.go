package usecase

import (
	"context"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Fleet        FleetService
	Building     BuildingService
	Cart         CartService
	Booking      BookingService
	Wallet       WalletService
	Review       ReviewService
	Notification NotificationService
}

// BookingNotifier receives lifecycle events after the triggering write has
// committed. Implementations must not block the caller.
type BookingNotifier interface {
	OnBookingCreated(booking *entity.Booking)
	OnBookingStatusChanged(booking *entity.Booking, from, to entity.BookingStatus)
	OnBookingCancelled(booking *entity.Booking, reason string)
}

// OTPSender delivers login codes to a phone number.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	notifier BookingNotifier,
	otpSender OTPSender,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, otpSender, log),
		User:         NewUserService(repo.User, config, log),
		Catalog:      NewCatalogService(repo.Service, config, log),
		Fleet:        NewFleetService(repo, config, log),
		Building:     NewBuildingService(repo, config, log),
		Cart:         NewCartService(repo, config, log),
		Booking:      NewBookingService(repo, config, notifier, log),
		Wallet:       NewWalletService(repo, config, log),
		Review:       NewReviewService(repo, config, log),
		Notification: NewNotificationService(repo.Notification, config, log),
	}
}

// withTimeout bounds one operation's store calls. A zero timeout only adds cancellation.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// normalizePage applies the defaults used by every listing endpoint.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
