package request

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"code" validate:"required,numeric,min=4,max=8"`

	// filled by the handler
	UserAgent *string `json:"-"`
	IPAddress *string `json:"-"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

// UpdateNotificationSettingsRequest changes only the toggles that are present.
type UpdateNotificationSettingsRequest struct {
	InApp    *InAppNotificationSettingsRequest `json:"in_app"`
	WhatsApp *bool                             `json:"whatsapp"`
	Email    *bool                             `json:"email"`
}

type InAppNotificationSettingsRequest struct {
	Appointment *bool `json:"appointment"`
	Service     *bool `json:"service"`
	Payment     *bool `json:"payment"`
	Offers      *bool `json:"offers"`
}
