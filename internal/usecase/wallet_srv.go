package usecase

import (
	"context"
	"fmt"
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

type WalletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error)
	TopUp(ctx context.Context, userID uuid.UUID, req *request.TopUpRequest) (*response.TopUpResponse, error)
}

type walletService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewWalletService(repo *repository.Repository, config *utils.Config, log *zap.Logger) WalletService {
	return &walletService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "wallet")),
	}
}

func (s *walletService) GetBalance(ctx context.Context, userID uuid.UUID) (*response.WalletResponse, error) {
	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	balance, err := s.repo.Wallet.Balance(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	return &response.WalletResponse{Balance: balance}, nil
}

func (s *walletService) ListTransactions(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error) {
	req.Page, req.PerPage = normalizePage(req.Page, req.PerPage)

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	txns, err := s.repo.Wallet.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, storeError(err)
	}

	total, err := s.repo.Wallet.CountByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}

	data := make([]response.WalletTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		data = append(data, response.WalletTransactionToResponse(txn))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

// TopUp appends a credit entry; the balance is always derived from the ledger.
func (s *walletService) TopUp(ctx context.Context, userID uuid.UUID, req *request.TopUpRequest) (*response.TopUpResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	// booking references key payments and refunds
	if req.Reference != nil && strings.HasPrefix(*req.Reference, utils.ReferencePrefix) {
		return nil, validationError(map[string]string{
			"reference": fmt.Sprintf("Must not start with %s", utils.ReferencePrefix),
		})
	}

	ctx, cancel := withTimeout(ctx, s.config.Database.QueryTimeout)
	defer cancel()

	txn := newWalletTransaction(userID, req.Amount, entity.TransactionCredit, "Wallet top-up", req.Reference)

	var balance int64
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		if err := tx.Wallet.LockUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Wallet.Create(ctx, txn); err != nil {
			return err
		}

		var err error
		balance, err = tx.Wallet.Balance(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.log.Info("Wallet topped up",
		zap.String("user_id", userID.String()),
		zap.Int64("amount", req.Amount))

	return &response.TopUpResponse{
		Transaction: response.WalletTransactionToResponse(txn),
		Balance:     balance,
	}, nil
}

// debitBookings charges each booking to the wallet when the derived balance covers the total.
// It must run inside a transaction.
func debitBookings(ctx context.Context, tx *repository.Repository, userID uuid.UUID, bookings []*entity.Booking) error {
	if err := tx.Wallet.LockUser(ctx, userID); err != nil {
		return err
	}

	balance, err := tx.Wallet.Balance(ctx, userID)
	if err != nil {
		return err
	}

	var total int64
	for _, b := range bookings {
		total += b.TotalPrice
	}
	if balance < total {
		return newError(ErrInsufficientFunds, "wallet balance %d does not cover %d", balance, total)
	}

	for _, b := range bookings {
		if b.TotalPrice <= 0 {
			continue
		}
		ref := b.ReferenceNumber
		txn := newWalletTransaction(userID, b.TotalPrice, entity.TransactionDebit,
			fmt.Sprintf("Payment for %s", b.ServiceTitle), &ref)
		if err := tx.Wallet.Create(ctx, txn); err != nil {
			return err
		}
	}

	return nil
}

// refundBooking credits back a wallet payment for a cancelled booking, at most once.
func refundBooking(ctx context.Context, tx *repository.Repository, booking *entity.Booking) error {
	if err := tx.Wallet.LockUser(ctx, booking.UserID); err != nil {
		return err
	}

	paid, err := tx.Wallet.FindByReference(ctx, booking.UserID, booking.ReferenceNumber, entity.TransactionDebit)
	if err != nil || paid == nil {
		return err
	}

	refunded, err := tx.Wallet.FindByReference(ctx, booking.UserID, booking.ReferenceNumber, entity.TransactionCredit)
	if err != nil || refunded != nil {
		return err
	}

	ref := booking.ReferenceNumber
	return tx.Wallet.Create(ctx, newWalletTransaction(booking.UserID, paid.Amount, entity.TransactionCredit,
		fmt.Sprintf("Refund for %s", booking.ServiceTitle), &ref))
}

func newWalletTransaction(userID uuid.UUID, amount int64, txnType entity.TransactionType, description string, reference *string) *entity.WalletTransaction {
	return &entity.WalletTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:      userID,
		Amount:      amount,
		Type:        txnType,
		Description: description,
		Reference:   reference,
	}
}
