package request

type CheckoutRequest struct {
	// empty means the whole cart
	CartItemIDs []string `json:"cart_item_ids" validate:"omitempty,max=50,dive,uuid"`
	BuildingID  *string  `json:"building_id" validate:"omitempty,uuid"`

	// debit the wallet for every created booking
	PayWithWallet bool `json:"pay_with_wallet"`
}

type CancelBookingRequest struct {
	Reason string  `json:"reason" validate:"required,max=100"`
	Note   *string `json:"note" validate:"omitempty,max=500"`
}

type AdvanceBookingRequest struct {
	// optional; when set it must be the next status
	Target *string `json:"target" validate:"omitempty,oneof=pending accepted in_progress completed cancelled"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status *string `json:"status" validate:"omitempty,oneof=pending accepted in_progress completed cancelled"`
}
