package usecase

import (
	"context"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error)
	ListServices(ctx context.Context, req *request.ServiceListRequest) ([]response.ServiceResponse, error)
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
	config      *utils.Config
	log         *zap.Logger
}

func NewCatalogService(serviceRepo repository.ServiceRepository, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		config:      config,
		log:         log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if service == nil {
		return nil, newError(ErrNotFound, "service not found")
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) ListServices(ctx context.Context, req *request.ServiceListRequest) ([]response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, validationError(map[string]string{"min_price": "Must not exceed max_price"})
	}

	filter := entity.ServiceFilter{
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	if req.CarType != nil {
		carType := entity.CarType(*req.CarType)
		filter.CarType = &carType
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	services, err := s.serviceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}

	result := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		result = append(result, response.ServiceToResponse(service))
	}

	return result, nil
}
