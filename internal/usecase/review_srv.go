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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, bookingID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "review")),
	}
}

// CreateReview rates a completed booking of the caller, once.
func (s *reviewService) CreateReview(ctx context.Context, userID, bookingID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, newError(ErrNotFound, "booking not found")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, newError(ErrInvalidTransition, "only completed bookings can be reviewed")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, storeError(err)
	}

	s.log.Info("Review created",
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", review.Rating))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	req.Page, req.PerPage = normalizePage(req.Page, req.PerPage)

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	reviews, err := s.repo.Review.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storeError(err)
	}

	total, err := s.repo.Review.CountByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, response.ReviewToResponse(r))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}
