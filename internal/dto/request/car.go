package request

type CarRequest struct {
	Brand       *string `json:"brand" validate:"omitempty,max=100"`
	Model       *string `json:"model" validate:"omitempty,max=100"`
	Type        string  `json:"type" validate:"required,car_type"`
	PlateNumber string  `json:"plate_number" validate:"required,max=32"`
	Year        *int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Parking     *string `json:"parking" validate:"omitempty,max=100"`
	Flat        *string `json:"flat" validate:"omitempty,max=100"`
}

type BuildingRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address" validate:"required,max=500"`
	City      string `json:"city" validate:"required,max=100"`
	Country   string `json:"country" validate:"required,max=100"`
	IsDefault bool   `json:"is_default"`
}
