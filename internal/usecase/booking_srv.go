package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Customer endpoints
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, userID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Cancel(ctx context.Context, userID, bookingID uuid.UUID, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CancelReasons() response.CancelReasonsResponse

	// Provider endpoints
	Advance(ctx context.Context, bookingID uuid.UUID, req *request.AdvanceBookingRequest) (*response.BookingResponse, error)
	Reject(ctx context.Context, bookingID uuid.UUID, req *request.RejectBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository // grouping semua booking-related repos
	config   *utils.Config
	notifier BookingNotifier
	log      *zap.Logger

	newReference func() (string, error)
}

func NewBookingService(repo *repository.Repository, config *utils.Config, notifier BookingNotifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		config:       config,
		notifier:     notifier,
		log:          log.With(zap.String("service", "booking")),
		newReference: utils.GenerateReferenceNumber,
	}
}

// Checkout converts cart items into pending bookings. Either every selected
// item becomes a booking and leaves the cart, or nothing changes.
func (s *bookingService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	itemIDs := uniqueIDs(req.CartItemIDs)

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	var bookings []*entity.Booking
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		bookings = nil

		// 2. Lock the selected cart rows; a concurrent checkout waits here
		items, err := s.lockCartItems(ctx, tx, userID, itemIDs)
		if err != nil {
			return err
		}

		// 3. Resolve the location
		buildingID, err := s.resolveBuilding(ctx, tx, userID, req.BuildingID)
		if err != nil {
			return err
		}

		// 4. Validate, price and persist one booking per cart line
		services := make(map[uuid.UUID]*entity.Service)
		cars := make(map[uuid.UUID]*entity.Car)
		now := time.Now()

		for _, item := range items {
			service, car, err := s.checkItem(ctx, tx, userID, item, services, cars)
			if err != nil {
				return err
			}

			booking := newBooking(item, service, car, buildingID, now)
			if err := s.insertWithReference(ctx, tx, booking); err != nil {
				return err
			}
			bookings = append(bookings, booking)
		}

		// 5. Optional wallet payment, inside the same transaction
		if req.PayWithWallet {
			if err := debitBookings(ctx, tx, userID, bookings); err != nil {
				return err
			}
		}

		// 6. Consume the cart lines
		consumed := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			consumed = append(consumed, item.ID)
		}
		n, err := tx.Cart.DeleteByIDs(ctx, userID, consumed)
		if err != nil {
			return err
		}
		if n != int64(len(consumed)) {
			return ErrCartConflict
		}

		return nil
	})
	if err != nil {
		if !isAppError(err) {
			s.log.Error("Checkout failed", zap.Error(err), zap.String("user_id", userID.String()))
		}
		return nil, storeError(err)
	}

	// 7. Committed; notifications never affect the outcome
	resp := &response.CheckoutResponse{Bookings: make([]response.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		s.notifier.OnBookingCreated(b)
		resp.Bookings = append(resp.Bookings, response.BookingToResponse(b))
		resp.Total += b.TotalPrice
	}

	s.log.Info("Checkout completed",
		zap.String("user_id", userID.String()),
		zap.Int("bookings", len(bookings)),
		zap.Int64("total", resp.Total))

	return resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Page, req.PerPage = normalizePage(req.Page, req.PerPage)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var status *entity.BookingStatus
	if req.Status != nil {
		st, err := entity.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, validationError(map[string]string{"status": err.Error()})
		}
		status = &st
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, storeError(err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID, status)
	if err != nil {
		return nil, storeError(err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// Cancel is allowed only from a cancellable status and is a single conditional
// write; a second cancel observes InvalidTransition.
func (s *bookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	reason, err := cancelReason(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	booking, err := s.findOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.Cancellable() {
		return nil, newError(ErrInvalidTransition, "booking %s is %s and can no longer be cancelled",
			booking.ReferenceNumber, booking.Status)
	}

	cancelled, err := s.cancel(ctx, bookingID, &userID, reason, entity.CancelledByUser)
	if err != nil {
		return nil, err
	}

	s.notifier.OnBookingCancelled(cancelled, reason)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("by", string(entity.CancelledByUser)))

	resp := response.BookingToResponse(cancelled)
	return &resp, nil
}

func (s *bookingService) CancelReasons() response.CancelReasonsResponse {
	reasons := make([]string, len(entity.CancelReasons))
	copy(reasons, entity.CancelReasons)
	return response.CancelReasonsResponse{Reasons: reasons, Other: entity.CancelReasonOther}
}

// Advance moves a booking exactly one step forward. A target other than the
// next status is rejected so states cannot be skipped.
func (s *bookingService) Advance(ctx context.Context, bookingID uuid.UUID, req *request.AdvanceBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "booking not found")
	}

	from := booking.Status
	to, ok := from.Next()
	if !ok {
		return nil, newError(ErrInvalidTransition, "booking is %s", from)
	}
	if req.Target != nil {
		target, err := entity.ParseBookingStatus(*req.Target)
		if err != nil {
			return nil, validationError(map[string]string{"target": err.Error()})
		}
		if !from.CanTransitionTo(target) || target != to {
			return nil, newError(ErrInvalidTransition, "cannot move booking from %s to %s", from, target)
		}
	}

	updated, err := s.repo.Booking.UpdateStatus(ctx, bookingID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// status changed between read and write
			return nil, newError(ErrInvalidTransition, "booking status changed, reload and retry")
		}
		return nil, storeError(err)
	}

	s.notifier.OnBookingStatusChanged(updated, from, to)

	s.log.Info("Booking advanced",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// Reject is the provider-side cancellation.
func (s *bookingService) Reject(ctx context.Context, bookingID uuid.UUID, req *request.RejectBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, validationError(map[string]string{"reason": "This field is required"})
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "booking not found")
	}
	if !booking.Status.Cancellable() {
		return nil, newError(ErrInvalidTransition, "booking is %s and can no longer be rejected", booking.Status)
	}

	rejected, err := s.cancel(ctx, bookingID, nil, reason, entity.CancelledByProvider)
	if err != nil {
		return nil, err
	}

	s.notifier.OnBookingCancelled(rejected, reason)

	s.log.Info("Booking rejected", zap.String("booking_id", bookingID.String()))

	resp := response.BookingToResponse(rejected)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findOwned(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err)
	}
	// another user's booking is reported as missing
	if booking == nil || booking.UserID != userID {
		return nil, newError(ErrNotFound, "booking not found")
	}
	return booking, nil
}

// cancel applies the conditional cancel and refunds a wallet payment in one transaction.
func (s *bookingService) cancel(ctx context.Context, bookingID uuid.UUID, userID *uuid.UUID, reason string, by entity.CancelledBy) (*entity.Booking, error) {
	var cancelled *entity.Booking
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		var err error
		cancelled, err = tx.Booking.Cancel(ctx, bookingID, userID, reason, by)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrInvalidTransition, "booking can no longer be cancelled")
			}
			return err
		}
		return refundBooking(ctx, tx, cancelled)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return cancelled, nil
}

func (s *bookingService) lockCartItems(ctx context.Context, tx *repository.Repository, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error) {
	if len(ids) == 0 {
		items, err := tx.Cart.LockByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, ErrEmptyCart
		}
		return items, nil
	}

	items, err := tx.Cart.LockByUserAndIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	switch {
	case len(items) == 0:
		// already checked out by a concurrent request, or never ours
		return nil, newError(ErrNotFound, "cart items not found")
	case len(items) != len(ids):
		return nil, newError(ErrCartConflict, "%d of %d cart items are no longer available", len(ids)-len(items), len(ids))
	}
	return items, nil
}

func (s *bookingService) resolveBuilding(ctx context.Context, tx *repository.Repository, userID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		building, err := tx.Building.FindDefault(ctx, userID)
		if err != nil || building == nil {
			return nil, err
		}
		return &building.ID, nil
	}

	id := uuid.MustParse(*raw)
	building, err := tx.Building.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if building == nil || building.UserID != userID {
		return nil, newError(ErrNotFound, "building not found")
	}
	return &building.ID, nil
}

// checkItem enforces the checkout guards for one cart line.
func (s *bookingService) checkItem(
	ctx context.Context,
	tx *repository.Repository,
	userID uuid.UUID,
	item *entity.CartItem,
	services map[uuid.UUID]*entity.Service,
	cars map[uuid.UUID]*entity.Car,
) (*entity.Service, *entity.Car, error) {
	service, ok := services[item.ServiceID]
	if !ok {
		var err error
		if service, err = tx.Service.FindByID(ctx, item.ServiceID); err != nil {
			return nil, nil, err
		}
		services[item.ServiceID] = service
	}
	if service == nil || !service.IsActive {
		return nil, nil, newError(ErrInactiveService, "service %s is not available", item.ServiceID)
	}

	car, ok := cars[item.CarID]
	if !ok {
		var err error
		if car, err = tx.Car.FindByID(ctx, item.CarID); err != nil {
			return nil, nil, err
		}
		cars[item.CarID] = car
	}
	// a foreign car reads the same as a deleted one
	if car == nil || car.UserID != userID {
		return nil, nil, newError(ErrInvalidCar, "car %s no longer exists", item.CarID)
	}
	if !service.AppliesTo(car.Type) {
		return nil, nil, newError(ErrInvalidCar, "service %q is not offered for %s", service.Title, car.Type)
	}

	return service, car, nil
}

// insertWithReference retries on reference collisions, bounded by config.
func (s *bookingService) insertWithReference(ctx context.Context, tx *repository.Repository, booking *entity.Booking) error {
	attempts := s.config.Booking.ReferenceMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		ref, err := s.newReference()
		if err != nil {
			return err
		}
		booking.ReferenceNumber = ref

		created, err := tx.Booking.Create(ctx, booking)
		if err != nil {
			return err
		}
		if created {
			return nil
		}
	}

	s.log.Error("Reference generation exhausted", zap.Int("attempts", attempts))
	return ErrReferenceGenerationFailed
}

// newBooking snapshots price and car details at checkout time.
func newBooking(item *entity.CartItem, service *entity.Service, car *entity.Car, buildingID *uuid.UUID, now time.Time) *entity.Booking {
	return &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:              item.UserID,
		ServiceID:           service.ID,
		ServiceTitle:        service.Title,
		CarID:               car.ID,
		CarBrand:            car.Brand,
		CarModel:            car.Model,
		CarType:             car.Type,
		CarPlate:            car.PlateNumber,
		BuildingID:          buildingID,
		ScheduledDate:       item.ScheduledDate,
		TimeSlot:            item.TimeSlot,
		Quantity:            item.Quantity,
		UnitPrice:           service.Price,
		TotalPrice:          service.Price * int64(item.Quantity),
		Status:              entity.BookingStatusPending,
		SpecialInstructions: item.SpecialInstructions,
	}
}

// cancelReason resolves the stored reason: a listed reason, or the note for "Other".
func cancelReason(req *request.CancelBookingRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", validationError(errs)
	}
	if !entity.IsCancelReason(req.Reason) {
		return "", validationError(map[string]string{"reason": "Must be one of the listed cancellation reasons"})
	}
	if req.Reason != entity.CancelReasonOther {
		return req.Reason, nil
	}

	if req.Note == nil || strings.TrimSpace(*req.Note) == "" {
		return "", validationError(map[string]string{"note": "Required when reason is Other"})
	}
	return fmt.Sprintf("%s: %s", entity.CancelReasonOther, strings.TrimSpace(*req.Note)), nil
}

func uniqueIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id := uuid.MustParse(r)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func isAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
