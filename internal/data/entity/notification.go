package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationBookingCreated  NotificationType = "booking_created"
	NotificationBookingStatus   NotificationType = "booking_status"
	NotificationBookingCanceled NotificationType = "booking_cancelled"
	NotificationGeneral         NotificationType = "general"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	Type    NotificationType `db:"type"`
	IsRead  bool             `db:"is_read"`
}

// NotificationSettings are a user's delivery preferences, stored as JSONB on users.
type NotificationSettings struct {
	InApp    InAppNotificationSettings `json:"in_app"`
	WhatsApp bool                      `json:"whatsapp"`
	Email    bool                      `json:"email"`
}

type InAppNotificationSettings struct {
	Appointment bool `json:"appointment"`
	Service     bool `json:"service"`
	Payment     bool `json:"payment"`
	Offers      bool `json:"offers"`
}

// DefaultNotificationSettings matches the column default: every in-app topic on.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		InApp: InAppNotificationSettings{Appointment: true, Service: true, Payment: true, Offers: true},
	}
}

// AllowsInApp reports whether messages of type t reach the user in the app.
func (s NotificationSettings) AllowsInApp(t NotificationType) bool {
	switch t {
	case NotificationBookingCreated:
		return s.InApp.Appointment
	case NotificationBookingStatus, NotificationBookingCanceled:
		return s.InApp.Service
	default:
		return true
	}
}
