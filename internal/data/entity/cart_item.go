package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of scheduled dates.
const DateLayout = "2006-01-02"

// CartItem is an unconfirmed selection. (UserID, ServiceID, CarID, ScheduledDate, TimeSlot) is unique.
type CartItem struct {
	BaseNoDelete
	UserID              uuid.UUID `db:"user_id"`
	ServiceID           uuid.UUID `db:"service_id"`
	CarID               uuid.UUID `db:"car_id"`
	ScheduledDate       time.Time `db:"scheduled_date"`
	TimeSlot            string    `db:"time_slot"`
	SpecialInstructions *string   `db:"special_instructions"`
	Quantity            int       `db:"quantity"`
}
