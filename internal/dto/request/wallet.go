package request

type TopUpRequest struct {
	Amount    int64   `json:"amount" validate:"required,min=1,max=100000000"`
	Reference *string `json:"reference" validate:"omitempty,max=64"`
}
