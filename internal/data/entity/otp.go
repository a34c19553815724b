package entity

import (
	"time"
)

// OTP is a one-time login code sent to a phone number. Only the bcrypt hash is stored.
type OTP struct {
	BaseSimple
	Phone     string    `db:"phone"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	Attempts  int       `db:"attempts"`
	IsUsed    bool      `db:"is_used"`
}
