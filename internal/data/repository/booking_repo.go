package repository

import (
	"context"
	"errors"
	"fmt"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create reports false without error when the reference number is already taken.
	Create(ctx context.Context, booking *entity.Booking) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error)

	// UpdateStatus moves the booking from one status to another only if it is
	// still in from. ErrNotFound means no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (*entity.Booking, error)
	// Cancel cancels a booking in a cancellable status. A non-nil userID
	// restricts the update to that owner.
	Cancel(ctx context.Context, id uuid.UUID, userID *uuid.UUID, reason string, by entity.CancelledBy) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference_number, user_id, service_id, service_title, car_id, car_brand, car_model,
	car_type, car_plate, building_id, scheduled_date, time_slot, quantity, unit_price_minor, total_price_minor,
	status, special_instructions, cancellation_reason, cancelled_by, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ReferenceNumber,
		&booking.UserID,
		&booking.ServiceID,
		&booking.ServiceTitle,
		&booking.CarID,
		&booking.CarBrand,
		&booking.CarModel,
		&booking.CarType,
		&booking.CarPlate,
		&booking.BuildingID,
		&booking.ScheduledDate,
		&booking.TimeSlot,
		&booking.Quantity,
		&booking.UnitPrice,
		&booking.TotalPrice,
		&booking.Status,
		&booking.SpecialInstructions,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func cancellableStatuses() []string {
	var statuses []string
	for _, s := range entity.BookingStatuses {
		if s.Cancellable() {
			statuses = append(statuses, string(s))
		}
	}
	return statuses
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (id, reference_number, user_id, service_id, service_title, car_id, car_brand, car_model,
		                      car_type, car_plate, building_id, scheduled_date, time_slot, quantity,
		                      unit_price_minor, total_price_minor, status, special_instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT ON CONSTRAINT uq_bookings_reference DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.ReferenceNumber,
		booking.UserID,
		booking.ServiceID,
		booking.ServiceTitle,
		booking.CarID,
		booking.CarBrand,
		booking.CarModel,
		string(booking.CarType),
		booking.CarPlate,
		booking.BuildingID,
		booking.ScheduledDate,
		booking.TimeSlot,
		booking.Quantity,
		booking.UnitPrice,
		booking.TotalPrice,
		string(booking.Status),
		booking.SpecialInstructions,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		r.log.Warn("Booking reference collision", zap.String("reference_number", booking.ReferenceNumber))
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference_number", booking.ReferenceNumber),
			zap.String("user_id", booking.UserID.String()),
		)
		return false, fmt.Errorf("create booking %s: %w", booking.ReferenceNumber, err)
	}

	return true, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, reference_number
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, userID, statusArg(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, statusArg(status)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, string(from), string(to)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("update booking %s status: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID, userID *uuid.UUID, reason string, by entity.CancelledBy) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $4, cancellation_reason = $5, cancelled_by = $6, updated_at = NOW()
		WHERE id = $1
		  AND ($2::uuid IS NULL OR user_id = $2)
		  AND status = ANY($3)
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query,
		id,
		userID,
		cancellableStatuses(),
		string(entity.BookingStatusCancelled),
		reason,
		string(by),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("cancel booking %s: %w", id, err)
	}

	return booking, nil
}

func statusArg(status *entity.BookingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}
