package repository

import (
	"context"
	"errors"
	"fmt"

	"carwash-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	OTP          OTPRepository
	Service      ServiceRepository
	Car          CarRepository
	Building     BuildingRepository
	Cart         CartRepository
	Booking      BookingRepository
	Wallet       WalletRepository
	Notification NotificationRepository
	Review       ReviewRepository

	Tx Transactor
}

// Transactor runs fn with repositories bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.Tx = &pgTransactor{db: db, log: log}
	return repo
}

func newRepositories(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		OTP:          NewOTPRepository(db, log),
		Service:      NewServiceRepository(db, log),
		Car:          NewCarRepository(db, log),
		Building:     NewBuildingRepository(db, log),
		Cart:         NewCartRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Wallet:       NewWalletRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Review:       NewReviewRepository(db, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			t.rollback(ctx, tx)
			panic(p)
		}
	}()

	txRepo := newRepositories(tx, t.log)
	txRepo.Tx = joinedTransactor{repo: txRepo}

	if err := fn(ctx, txRepo); err != nil {
		t.rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rollback runs on a context that outlives a cancelled request.
func (t *pgTransactor) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.log.Warn("Rollback failed", zap.Error(err))
	}
}

// joinedTransactor reuses the surrounding transaction.
type joinedTransactor struct {
	repo *Repository
}

func (j joinedTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error {
	return fn(ctx, j.repo)
}
