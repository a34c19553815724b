package usecase

import (
	"context"
	"errors"

	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService reads the in-app inbox the dispatcher writes to.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	config           *utils.Config
	log              *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, config *utils.Config, log *zap.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		config:           config,
		log:              log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.NotificationListResponse, error) {
	req.Page, req.PerPage = normalizePage(req.Page, req.PerPage)

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	items, err := s.notificationRepo.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storeError(err)
	}

	total, err := s.notificationRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	data := make([]response.NotificationResponse, 0, len(items))
	for _, n := range items {
		data = append(data, response.NotificationToResponse(n))
	}

	return &response.NotificationListResponse{
		PaginatedResponse: response.NewPaginatedResponse(data, req.Page, req.PerPage, total),
		Unread:            unread,
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "notification not found")
		}
		return storeError(err)
	}
	return nil
}
