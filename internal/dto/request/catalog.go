package request

// ServiceListRequest is read from the query string of GET /api/services.
type ServiceListRequest struct {
	Category *string `json:"category" validate:"omitempty,min=1,max=100"`
	CarType  *string `json:"car_type" validate:"omitempty,car_type"`
	MinPrice *int64  `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice *int64  `json:"max_price" validate:"omitempty,min=0"`
}
