package request

type AddToCartRequest struct {
	ServiceID    string  `json:"service_id" validate:"required,uuid"`
	CarID        string  `json:"car_id" validate:"required,uuid"`
	Date         string  `json:"date" validate:"required,booking_date"`
	Slot         string  `json:"slot" validate:"required,time_slot"`
	Instructions *string `json:"instructions" validate:"omitempty,max=500"`
	Qty          int     `json:"qty" validate:"omitempty,min=1,max=99"`
}

type UpdateCartQuantityRequest struct {
	Delta int `json:"delta" validate:"min=-99,max=99"`
}
