package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/middleware"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP application.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	notifier usecase.BookingNotifier,
	otpSender usecase.OTPSender,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, notifier, otpSender, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, repo, logger),
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	auth := middleware.AuthSession(repo.Session, logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth)
	wireCatalog(r, handler.Catalog)
	wireFleet(r, handler.Car, handler.Building, auth)
	wireCart(r, handler.Cart, auth)
	wireBooking(r, handler.Booking, handler.Review, auth, logger)
	wireWallet(r, handler.Wallet, auth)
	wireNotification(r, handler.Notification, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
