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

const carPlateConstraint = "uq_cars_user_plate"

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
}

type carRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewCarRepository(db database.DBTX, log *zap.Logger) CarRepository {
	return &carRepository{
		db:  db,
		log: log.With(zap.String("repository", "car")),
	}
}

const carColumns = `id, user_id, brand, model, car_type, plate_number, year, parking, flat, created_at, updated_at, deleted_at`

func scanCar(row pgx.Row) (*entity.Car, error) {
	var car entity.Car
	err := row.Scan(
		&car.ID,
		&car.UserID,
		&car.Brand,
		&car.Model,
		&car.Type,
		&car.PlateNumber,
		&car.Year,
		&car.Parking,
		&car.Flat,
		&car.CreatedAt,
		&car.UpdatedAt,
		&car.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	query := `
		INSERT INTO cars (id, user_id, brand, model, car_type, plate_number, year, parking, flat, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		car.ID,
		car.UserID,
		car.Brand,
		car.Model,
		string(car.Type),
		car.PlateNumber,
		car.Year,
		car.Parking,
		car.Flat,
		car.CreatedAt,
		car.UpdatedAt,
	)
	if database.IsUniqueViolation(err, carPlateConstraint) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create car", zap.Error(err), zap.String("user_id", car.UserID.String()))
		return fmt.Errorf("create car: %w", err)
	}

	return nil
}

// FindByID returns a live (not deleted) car of any owner.
func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 AND deleted_at IS NULL`

	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find car by ID", zap.Error(err), zap.String("car_id", id.String()))
		return nil, fmt.Errorf("find car by ID %s: %w", id, err)
	}

	return car, nil
}

func (r *carRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Car, error) {
	query := `SELECT ` + carColumns + `
		FROM cars
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to query cars", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("query cars: %w", err)
	}
	defer rows.Close()

	var cars []*entity.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			r.log.Error("Failed to scan car row", zap.Error(err))
			return nil, fmt.Errorf("scan car: %w", err)
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars: %w", err)
	}

	return cars, nil
}

// Update rewrites a live car owned by car.UserID.
func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	query := `
		UPDATE cars
		SET brand = $3, model = $4, car_type = $5, plate_number = $6,
		    year = $7, parking = $8, flat = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		car.ID,
		car.UserID,
		car.Brand,
		car.Model,
		string(car.Type),
		car.PlateNumber,
		car.Year,
		car.Parking,
		car.Flat,
		car.UpdatedAt,
	)
	if database.IsUniqueViolation(err, carPlateConstraint) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to update car", zap.Error(err), zap.String("car_id", car.ID.String()))
		return fmt.Errorf("update car %s: %w", car.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SoftDelete marks the car deleted. Bookings keep their snapshot of it.
func (r *carRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE cars
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete car", zap.Error(err), zap.String("car_id", id.String()))
		return fmt.Errorf("delete car %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
