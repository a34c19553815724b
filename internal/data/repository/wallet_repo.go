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

type WalletRepository interface {
	Create(ctx context.Context, txn *entity.WalletTransaction) error
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByReference(ctx context.Context, userID uuid.UUID, reference string, txnType entity.TransactionType) (*entity.WalletTransaction, error)
	// LockUser serializes ledger writes for one user until the transaction ends.
	LockUser(ctx context.Context, userID uuid.UUID) error
}

type walletRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewWalletRepository(db database.DBTX, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

const walletColumns = `id, user_id, amount_minor, type, description, reference, created_at`

func scanWalletTransaction(row pgx.Row) (*entity.WalletTransaction, error) {
	var txn entity.WalletTransaction
	err := row.Scan(
		&txn.ID,
		&txn.UserID,
		&txn.Amount,
		&txn.Type,
		&txn.Description,
		&txn.Reference,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *walletRepository) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (id, user_id, amount_minor, type, description, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.Amount,
		string(txn.Type),
		txn.Description,
		txn.Reference,
		txn.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create wallet transaction",
			zap.Error(err),
			zap.String("user_id", txn.UserID.String()),
			zap.String("type", string(txn.Type)),
		)
		return fmt.Errorf("create wallet transaction: %w", err)
	}

	return nil
}

// Balance derives credits minus debits from the ledger.
func (r *walletRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount_minor ELSE -amount_minor END), 0)::bigint
		FROM wallet_transactions
		WHERE user_id = $1
	`

	var balance int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		r.log.Error("Failed to compute wallet balance", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("compute balance for %s: %w", userID, err)
	}

	return balance, nil
}

func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error) {
	query := `SELECT ` + walletColumns + `
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to query wallet transactions", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("query wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []*entity.WalletTransaction
	for rows.Next() {
		txn, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet transactions: %w", err)
	}

	return txns, nil
}

func (r *walletRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM wallet_transactions WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count wallet transactions", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count wallet transactions: %w", err)
	}

	return count, nil
}

func (r *walletRepository) FindByReference(ctx context.Context, userID uuid.UUID, reference string, txnType entity.TransactionType) (*entity.WalletTransaction, error) {
	query := `SELECT ` + walletColumns + `
		FROM wallet_transactions
		WHERE user_id = $1 AND reference = $2 AND type = $3
		ORDER BY created_at DESC
		LIMIT 1`

	txn, err := scanWalletTransaction(r.db.QueryRow(ctx, query, userID, reference, string(txnType)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet transaction by reference", zap.Error(err), zap.String("reference", reference))
		return nil, fmt.Errorf("find wallet transaction %s: %w", reference, err)
	}

	return txn, nil
}

func (r *walletRepository) LockUser(ctx context.Context, userID uuid.UUID) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

	if _, err := r.db.Exec(ctx, query, userID.String()); err != nil {
		r.log.Error("Failed to lock wallet", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("lock wallet for %s: %w", userID, err)
	}

	return nil
}
