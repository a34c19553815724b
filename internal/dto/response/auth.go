package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type OTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Phone     string          `json:"phone"`
	Role      entity.UserRole `json:"role"`
	IsNewUser bool            `json:"is_new_user"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Phone     string          `json:"phone"`
	FirstName *string         `json:"first_name,omitempty"`
	LastName  *string         `json:"last_name,omitempty"`
	Email     *string         `json:"email,omitempty"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Phone:     user.Phone,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session, isNew bool) AuthResponse {
	resp := AuthResponse{
		UserID:    user.ID.String(),
		Phone:     user.Phone,
		Role:      user.Role,
		IsNewUser: isNew,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

type InAppNotificationSettingsResponse struct {
	Appointment bool `json:"appointment"`
	Service     bool `json:"service"`
	Payment     bool `json:"payment"`
	Offers      bool `json:"offers"`
}

type NotificationSettingsResponse struct {
	InApp    InAppNotificationSettingsResponse `json:"in_app"`
	WhatsApp bool                              `json:"whatsapp"`
	Email    bool                              `json:"email"`
}

func NotificationSettingsToResponse(s entity.NotificationSettings) NotificationSettingsResponse {
	return NotificationSettingsResponse{
		InApp: InAppNotificationSettingsResponse{
			Appointment: s.InApp.Appointment,
			Service:     s.InApp.Service,
			Payment:     s.InApp.Payment,
			Offers:      s.InApp.Offers,
		},
		WhatsApp: s.WhatsApp,
		Email:    s.Email,
	}
}
