package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Next returns the status a provider advances to. ok is false for
// terminal statuses.
func (s BookingStatus) Next() (next BookingStatus, ok bool) {
	switch s {
	case BookingStatusPending:
		return BookingStatusAccepted, true
	case BookingStatusAccepted:
		return BookingStatusInProgress, true
	case BookingStatusInProgress:
		return BookingStatusCompleted, true
	case BookingStatusCompleted, BookingStatusCancelled:
		return "", false
	}
	panic(fmt.Sprintf("unhandled booking status %q", string(s)))
}

// CanTransitionTo is the transition table of the booking lifecycle.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if target == BookingStatusCancelled {
		return s.Cancellable()
	}
	next, ok := s.Next()
	return ok && next == target
}

// Cancellable reports whether a booking in this status may still be cancelled.
func (s BookingStatus) Cancellable() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted:
		return true
	case BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return false
	}
	panic(fmt.Sprintf("unhandled booking status %q", string(s)))
}

func (s BookingStatus) IsTerminal() bool {
	_, ok := s.Next()
	return !ok
}

type CancelledBy string

const (
	CancelledByUser     CancelledBy = "user"
	CancelledByProvider CancelledBy = "provider"
)

// CancelReasonOther is the only reason that takes free text.
const CancelReasonOther = "Other"

// CancelReasons is the fixed set offered to users.
var CancelReasons = []string{
	"Not happy with punctuality",
	"I am not available at that time anymore",
	"Got a full time maid",
	"Not happy with the quality",
	"Not getting the crew member I asked for",
	"Prefer to have one time bookings",
	CancelReasonOther,
}

func IsCancelReason(reason string) bool {
	for _, r := range CancelReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Booking is the durable order. Car and service details are snapshotted at
// checkout and TotalPrice never changes afterwards.
type Booking struct {
	BaseNoDelete
	ReferenceNumber     string        `db:"reference_number"`
	UserID              uuid.UUID     `db:"user_id"`
	ServiceID           uuid.UUID     `db:"service_id"`
	ServiceTitle        string        `db:"service_title"`
	CarID               uuid.UUID     `db:"car_id"`
	CarBrand            *string       `db:"car_brand"`
	CarModel            *string       `db:"car_model"`
	CarType             CarType       `db:"car_type"`
	CarPlate            string        `db:"car_plate"`
	BuildingID          *uuid.UUID    `db:"building_id"`
	ScheduledDate       time.Time     `db:"scheduled_date"`
	TimeSlot            string        `db:"time_slot"`
	Quantity            int           `db:"quantity"`
	UnitPrice           int64         `db:"unit_price_minor"`
	TotalPrice          int64         `db:"total_price_minor"`
	Status              BookingStatus `db:"status"`
	SpecialInstructions *string       `db:"special_instructions"`
	CancellationReason  *string       `db:"cancellation_reason"`
	CancelledBy         *CancelledBy  `db:"cancelled_by"`
}
