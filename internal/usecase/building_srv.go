package usecase

import (
	"context"
	"errors"
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

type BuildingService interface {
	AddBuilding(ctx context.Context, userID uuid.UUID, req *request.BuildingRequest) (*response.BuildingResponse, error)
	ListBuildings(ctx context.Context, userID uuid.UUID) ([]response.BuildingResponse, error)
	SetDefault(ctx context.Context, userID, buildingID uuid.UUID) (*response.BuildingResponse, error)
}

type buildingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBuildingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BuildingService {
	return &buildingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "building")),
	}
}

// AddBuilding stores a new address. The first building of a user becomes the default.
func (s *buildingService) AddBuilding(ctx context.Context, userID uuid.UUID, req *request.BuildingRequest) (*response.BuildingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	now := time.Now()
	building := &entity.Building{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Country: strings.TrimSpace(req.Country),
	}

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		current, err := tx.Building.FindDefault(ctx, userID)
		if err != nil {
			return err
		}

		building.IsDefault = req.IsDefault || current == nil
		if building.IsDefault && current != nil {
			if err := tx.Building.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}

		return tx.Building.Create(ctx, building)
	})
	if err != nil {
		return nil, storeError(err)
	}

	resp := response.BuildingToResponse(building)
	return &resp, nil
}

func (s *buildingService) ListBuildings(ctx context.Context, userID uuid.UUID) ([]response.BuildingResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	buildings, err := s.repo.Building.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	result := make([]response.BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		result = append(result, response.BuildingToResponse(b))
	}
	return result, nil
}

func (s *buildingService) SetDefault(ctx context.Context, userID, buildingID uuid.UUID) (*response.BuildingResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	var building *entity.Building
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		var err error
		building, err = tx.Building.FindByID(ctx, buildingID)
		if err != nil {
			return err
		}
		if building == nil || building.UserID != userID {
			return newError(ErrNotFound, "building not found")
		}

		if err := tx.Building.ClearDefault(ctx, userID); err != nil {
			return err
		}
		if err := tx.Building.SetDefault(ctx, buildingID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrNotFound, "building not found")
			}
			return err
		}

		building.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	resp := response.BuildingToResponse(building)
	return &resp, nil
}
