package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*response.NotificationSettingsResponse, error)
	UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, req *request.UpdateNotificationSettingsRequest) (*response.NotificationSettingsResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	config   *utils.Config
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		config:   config,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	ctx, cancel := withTimeout(ctx, us.config.Database.QueryTimeout)
	defer cancel()

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, us.config.Database.QueryTimeout)
	defer cancel()

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	// only provided fields change
	if req.FirstName != nil {
		user.FirstName = trimmedOrNil(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = trimmedOrNil(*req.LastName)
	}
	if req.Email != nil {
		user.Email = trimmedOrNil(strings.ToLower(*req.Email))
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "user not found")
		}
		return nil, storeError(err)
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*response.NotificationSettingsResponse, error) {
	ctx, cancel := withTimeout(ctx, us.config.Database.QueryTimeout)
	defer cancel()

	settings, err := us.userRepo.FindNotificationSettings(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if settings == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	resp := response.NotificationSettingsToResponse(*settings)
	return &resp, nil
}

func (us *userService) UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, req *request.UpdateNotificationSettingsRequest) (*response.NotificationSettingsResponse, error) {
	ctx, cancel := withTimeout(ctx, us.config.Database.QueryTimeout)
	defer cancel()

	settings, err := us.userRepo.FindNotificationSettings(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if settings == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	if in := req.InApp; in != nil {
		setIfPresent(&settings.InApp.Appointment, in.Appointment)
		setIfPresent(&settings.InApp.Service, in.Service)
		setIfPresent(&settings.InApp.Payment, in.Payment)
		setIfPresent(&settings.InApp.Offers, in.Offers)
	}
	setIfPresent(&settings.WhatsApp, req.WhatsApp)
	setIfPresent(&settings.Email, req.Email)

	if err := us.userRepo.UpdateNotificationSettings(ctx, userID, *settings); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "user not found")
		}
		return nil, storeError(err)
	}

	us.log.Info("Notification settings updated", zap.String("user_id", userID.String()))

	resp := response.NotificationSettingsToResponse(*settings)
	return &resp, nil
}

func setIfPresent(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
