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

type AuthService interface {
	RequestOTP(ctx context.Context, req *request.RequestOTPRequest) (*response.OTPResponse, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo      *repository.Repository // grouping userRepo, sessionRepo, & otpRepo
	config    *utils.Config
	otpSender OTPSender
	log       *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	otpSender OTPSender,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		config:    config,
		otpSender: otpSender,
		log:       log.With(zap.String("service", "auth")),
	}
}

func (s *authService) RequestOTP(ctx context.Context, req *request.RequestOTPRequest) (*response.OTPResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request OTP validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	// 2. Generate & hash code
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return nil, ErrInternal
	}

	hash, err := utils.HashOTP(code)
	if err != nil {
		s.log.Error("Failed to hash OTP", zap.Error(err))
		return nil, ErrInternal
	}

	now := time.Now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Phone:     req.Phone,
		CodeHash:  hash,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}

	// 3. Save OTP
	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return nil, storeError(err)
	}

	// 4. Deliver
	if err := s.otpSender.SendOTP(ctx, req.Phone, code); err != nil {
		s.log.Error("Failed to deliver OTP", zap.Error(err), zap.String("phone", req.Phone))
		return nil, ErrInternal
	}

	s.log.Info("OTP issued", zap.String("phone", req.Phone), zap.Time("expires_at", otp.ExpiresAt))

	return &response.OTPResponse{Phone: req.Phone, ExpiresAt: otp.ExpiresAt}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	// 2. Latest usable OTP
	otp, err := s.repo.OTP.FindLatestValid(ctx, req.Phone)
	if err != nil {
		return nil, storeError(err)
	}
	if otp == nil {
		return nil, newError(ErrUnauthorized, "invalid or expired code")
	}
	if otp.Attempts >= s.config.OTP.MaxAttempts {
		s.log.Warn("OTP attempts exhausted", zap.String("phone", req.Phone))
		return nil, newError(ErrUnauthorized, "too many attempts, request a new code")
	}

	// 3. Check code
	if !utils.CheckOTPHash(req.Code, otp.CodeHash) {
		if err := s.repo.OTP.IncrementAttempts(ctx, otp.ID); err != nil {
			return nil, storeError(err)
		}
		return nil, newError(ErrUnauthorized, "invalid or expired code")
	}

	var (
		user    *entity.User
		session *entity.Session
		isNew   bool
	)

	// 4. Consume the code, find-or-create the user and open a session atomically
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		if err := tx.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrUnauthorized, "invalid or expired code")
			}
			return err
		}

		user, err = tx.User.FindByPhone(ctx, req.Phone)
		if err != nil {
			return err
		}
		if user == nil {
			now := time.Now()
			user = &entity.User{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				Phone:    req.Phone,
				Role:     entity.RoleCustomer,
				IsActive: true,
			}
			if err := tx.User.Create(ctx, user); err != nil {
				return err
			}
			isNew = true
		}
		if !user.IsActive {
			return newError(ErrForbidden, "account is deactivated")
		}

		session, err = s.createSession(ctx, tx, user.ID, req)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.Bool("new_user", isNew))

	resp := response.AuthToResponse(user, session, isNew)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return newError(ErrUnauthorized, "invalid token format")
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrUnauthorized, "session already closed")
		}
		return storeError(err)
	}

	s.log.Info("User logged out")
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, tx *repository.Repository, userID uuid.UUID, req *request.VerifyOTPRequest) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: req.UserAgent,
		IPAddress: req.IPAddress,
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := tx.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
