package entity

import "github.com/google/uuid"

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// WalletTransaction is an append-only ledger entry. Amount is always positive;
// Type decides the sign when the balance is derived.
type WalletTransaction struct {
	BaseSimple
	UserID      uuid.UUID       `db:"user_id"`
	Amount      int64           `db:"amount_minor"`
	Type        TransactionType `db:"type"`
	Description string          `db:"description"`
	Reference   *string         `db:"reference"`
}
