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

type CartService interface {
	AddToCart(ctx context.Context, userID uuid.UUID, req *request.AddToCartRequest) (*response.CartItemResponse, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req *request.UpdateCartQuantityRequest) (*response.CartItemResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ListCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCartService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CartService {
	return &cartService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "cart")),
	}
}

// ComputeTotal sums unit price times quantity. Items whose service has no
// known price contribute nothing.
func ComputeTotal(items []*entity.CartItem, prices map[uuid.UUID]int64) int64 {
	var total int64
	for _, item := range items {
		total += prices[item.ServiceID] * int64(item.Quantity)
	}
	return total
}

func (s *cartService) AddToCart(ctx context.Context, userID uuid.UUID, req *request.AddToCartRequest) (*response.CartItemResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to cart validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	serviceID := uuid.MustParse(req.ServiceID)
	carID := uuid.MustParse(req.CarID)
	date, _ := time.Parse(entity.DateLayout, req.Date)
	qty := req.Qty
	if qty == 0 {
		qty = 1
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	// 2. Service must be bookable
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, storeError(err)
	}
	if service == nil {
		return nil, newError(ErrNotFound, "service not found")
	}
	if !service.IsActive {
		return nil, newError(ErrInactiveService, "service %q is not available", service.Title)
	}

	// 3. Car must be the user's and fit the service
	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		return nil, storeError(err)
	}
	if car == nil || car.UserID != userID {
		return nil, newError(ErrInvalidCar, "car not found")
	}
	if !service.AppliesTo(car.Type) {
		return nil, newError(ErrInvalidCar, "service %q is not offered for %s", service.Title, car.Type)
	}

	// 4. Insert or merge into the existing line
	now := time.Now()
	item := &entity.CartItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:              userID,
		ServiceID:           serviceID,
		CarID:               carID,
		ScheduledDate:       date,
		TimeSlot:            strings.TrimSpace(req.Slot),
		SpecialInstructions: req.Instructions,
		Quantity:            qty,
	}

	stored, err := s.repo.Cart.Upsert(ctx, item)
	if err != nil {
		return nil, storeError(err)
	}

	s.log.Info("Cart item saved",
		zap.String("user_id", userID.String()),
		zap.String("item_id", stored.ID.String()),
		zap.Int("quantity", stored.Quantity))

	resp := response.CartItemToResponse(stored, service)
	return &resp, nil
}

// UpdateQuantity applies delta, never going below 1.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req *request.UpdateCartQuantityRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	var (
		item *entity.CartItem
		err  error
	)
	if req.Delta == 0 {
		item, err = s.repo.Cart.FindByID(ctx, itemID)
		if err == nil && (item == nil || item.UserID != userID) {
			err = repository.ErrNotFound
		}
	} else {
		item, err = s.repo.Cart.UpdateQuantity(ctx, itemID, userID, req.Delta)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "cart item not found")
		}
		return nil, storeError(err)
	}

	service, err := s.repo.Service.FindByID(ctx, item.ServiceID)
	if err != nil {
		return nil, storeError(err)
	}

	resp := response.CartItemToResponse(item, service)
	return &resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	if err := s.repo.Cart.Delete(ctx, itemID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "cart item not found")
		}
		return storeError(err)
	}

	return nil
}

func (s *cartService) ListCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	// current catalog prices, display only
	services := make(map[uuid.UUID]*entity.Service)
	prices := make(map[uuid.UUID]int64)
	for _, item := range items {
		if _, seen := services[item.ServiceID]; seen {
			continue
		}
		service, err := s.repo.Service.FindByID(ctx, item.ServiceID)
		if err != nil {
			return nil, storeError(err)
		}
		services[item.ServiceID] = service
		if service != nil {
			prices[item.ServiceID] = service.Price
		}
	}

	resp := &response.CartResponse{
		Items: make([]response.CartItemResponse, 0, len(items)),
		Total: ComputeTotal(items, prices),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, response.CartItemToResponse(item, services[item.ServiceID]))
	}

	return resp, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	n, err := s.repo.Cart.DeleteByUserID(ctx, userID)
	if err != nil {
		return storeError(err)
	}

	s.log.Info("Cart cleared", zap.String("user_id", userID.String()), zap.Int64("items", n))
	return nil
}
