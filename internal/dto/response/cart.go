package response

import (
	"carwash-booking/internal/data/entity"
)

type CartItemResponse struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"service_id"`
	ServiceTitle string  `json:"service_title,omitempty"`
	CarID        string  `json:"car_id"`
	Date         string  `json:"date"`
	Slot         string  `json:"slot"`
	Instructions *string `json:"instructions,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    int64   `json:"unit_price"`
	LineTotal    int64   `json:"line_total"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

// Helper converters

// CartItemToResponse prices the item with service when it is known.
func CartItemToResponse(item *entity.CartItem, service *entity.Service) CartItemResponse {
	resp := CartItemResponse{
		ID:           item.ID.String(),
		ServiceID:    item.ServiceID.String(),
		CarID:        item.CarID.String(),
		Date:         item.ScheduledDate.Format(entity.DateLayout),
		Slot:         item.TimeSlot,
		Instructions: item.SpecialInstructions,
		Quantity:     item.Quantity,
	}

	if service != nil {
		resp.ServiceTitle = service.Title
		resp.UnitPrice = service.Price
		resp.LineTotal = service.Price * int64(item.Quantity)
	}

	return resp
}
