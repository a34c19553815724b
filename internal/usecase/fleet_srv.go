package usecase

import (
	"context"
	"errors"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FleetService interface {
	AddCar(ctx context.Context, userID uuid.UUID, req *request.CarRequest) (*response.CarResponse, error)
	ListCars(ctx context.Context, userID uuid.UUID) ([]response.CarResponse, error)
	UpdateCar(ctx context.Context, userID, carID uuid.UUID, req *request.CarRequest) (*response.CarResponse, error)
	DeleteCar(ctx context.Context, userID, carID uuid.UUID) error
}

type fleetService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewFleetService(repo *repository.Repository, config *utils.Config, log *zap.Logger) FleetService {
	return &fleetService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) AddCar(ctx context.Context, userID uuid.UUID, req *request.CarRequest) (*response.CarResponse, error) {
	plate, err := s.validateCar(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	now := time.Now()
	car := &entity.Car{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		Brand:       req.Brand,
		Model:       req.Model,
		Type:        entity.CarType(req.Type),
		PlateNumber: plate,
		Year:        req.Year,
		Parking:     req.Parking,
		Flat:        req.Flat,
	}

	if err := s.repo.Car.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrInvalidCar, "plate number %s is already registered", plate)
		}
		return nil, storeError(err)
	}

	s.log.Info("Car added",
		zap.String("user_id", userID.String()),
		zap.String("car_id", car.ID.String()))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *fleetService) ListCars(ctx context.Context, userID uuid.UUID) ([]response.CarResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	cars, err := s.repo.Car.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	result := make([]response.CarResponse, 0, len(cars))
	for _, car := range cars {
		result = append(result, response.CarToResponse(car))
	}
	return result, nil
}

func (s *fleetService) UpdateCar(ctx context.Context, userID, carID uuid.UUID, req *request.CarRequest) (*response.CarResponse, error) {
	plate, err := s.validateCar(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return nil, storeError(err)
	}
	// someone else's car is reported as missing
	if car == nil || car.UserID != userID {
		return nil, newError(ErrNotFound, "car not found")
	}

	car.Brand = req.Brand
	car.Model = req.Model
	car.Type = entity.CarType(req.Type)
	car.PlateNumber = plate
	car.Year = req.Year
	car.Parking = req.Parking
	car.Flat = req.Flat
	car.UpdatedAt = time.Now()

	if err := s.repo.Car.Update(ctx, car); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, newError(ErrInvalidCar, "plate number %s is already registered", plate)
		case errors.Is(err, repository.ErrNotFound):
			return nil, newError(ErrNotFound, "car not found")
		}
		return nil, storeError(err)
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

// DeleteCar soft-deletes the car and drops cart items that still point at it.
func (s *fleetService) DeleteCar(ctx context.Context, userID, carID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	var removed int64
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		if err := tx.Car.SoftDelete(ctx, carID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrNotFound, "car not found")
			}
			return err
		}

		n, err := tx.Cart.DeleteByCarID(ctx, userID, carID)
		removed = n
		return err
	})
	if err != nil {
		return storeError(err)
	}

	s.log.Info("Car deleted",
		zap.String("user_id", userID.String()),
		zap.String("car_id", carID.String()),
		zap.Int64("cart_items_removed", removed))

	return nil
}

// validateCar returns the normalized plate or an InvalidCar error.
func (s *fleetService) validateCar(req *request.CarRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Car validation failed", zap.Any("errors", errs))
		return "", &AppError{Code: ErrInvalidCar.Code, Message: ErrInvalidCar.Message, Fields: errs}
	}

	plate := entity.NormalizePlate(req.PlateNumber)
	if plate == "" {
		return "", &AppError{
			Code:    ErrInvalidCar.Code,
			Message: ErrInvalidCar.Message,
			Fields:  map[string]string{"plate_number": "This field is required"},
		}
	}

	return plate, nil
}
