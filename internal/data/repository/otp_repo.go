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

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindLatestValid(ctx context.Context, phone string) (*entity.OTP, error)
	IncrementAttempts(ctx context.Context, otpID uuid.UUID) error
	MarkAsUsed(ctx context.Context, otpID uuid.UUID) error
}

type otpRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewOTPRepository(db database.DBTX, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, phone, code_hash, expires_at, attempts, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.Phone,
		otp.CodeHash,
		otp.ExpiresAt,
		otp.Attempts,
		otp.IsUsed,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP", zap.Error(err))
		return fmt.Errorf("create OTP: %w", err)
	}

	return nil
}

// FindLatestValid returns the newest unused, unexpired OTP for phone.
func (r *otpRepository) FindLatestValid(ctx context.Context, phone string) (*entity.OTP, error) {
	query := `
		SELECT id, phone, code_hash, expires_at, attempts, is_used, created_at
		FROM otps
		WHERE phone = $1
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&otp.ID,
		&otp.Phone,
		&otp.CodeHash,
		&otp.ExpiresAt,
		&otp.Attempts,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP", zap.Error(err))
		return nil, fmt.Errorf("find valid OTP: %w", err)
	}

	return &otp, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, otpID uuid.UUID) error {
	query := `UPDATE otps SET attempts = attempts + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, otpID); err != nil {
		r.log.Error("Failed to increment OTP attempts", zap.Error(err), zap.String("otp_id", otpID.String()))
		return fmt.Errorf("increment OTP %s attempts: %w", otpID, err)
	}

	return nil
}

// MarkAsUsed flips is_used once; a second call reports ErrNotFound.
func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID uuid.UUID) error {
	query := `
		UPDATE otps
		SET is_used = true
		WHERE id = $1 AND is_used = false
	`

	result, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.String("otp_id", otpID.String()),
		)
		return fmt.Errorf("mark OTP %s as used: %w", otpID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
