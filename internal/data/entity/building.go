package entity

import "github.com/google/uuid"

type Building struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	Country   string    `db:"country"`
	IsDefault bool      `db:"is_default"`
}
