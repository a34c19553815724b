package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type BookingCarResponse struct {
	ID          string         `json:"id"`
	Brand       *string        `json:"brand,omitempty"`
	Model       *string        `json:"model,omitempty"`
	Type        entity.CarType `json:"type"`
	PlateNumber string         `json:"plate_number"`
}

type BookingResponse struct {
	ID                 string               `json:"id"`
	ReferenceNumber    string               `json:"reference_number"`
	UserID             string               `json:"user_id"`
	ServiceID          string               `json:"service_id"`
	ServiceTitle       string               `json:"service_title"`
	Car                BookingCarResponse   `json:"car"`
	BuildingID         *string              `json:"building_id,omitempty"`
	Date               string               `json:"date"`
	Slot               string               `json:"slot"`
	Quantity           int                  `json:"quantity"`
	UnitPrice          int64                `json:"unit_price"`
	TotalPrice         int64                `json:"total_price"`
	Status             entity.BookingStatus `json:"status"`
	Instructions       *string              `json:"instructions,omitempty"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
	CancelledBy        *entity.CancelledBy  `json:"cancelled_by,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type CheckoutResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}

type CancelReasonsResponse struct {
	Reasons []string `json:"reasons"`
	// the reason that requires a note
	Other string `json:"other"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID.String(),
		ReferenceNumber: b.ReferenceNumber,
		UserID:          b.UserID.String(),
		ServiceID:       b.ServiceID.String(),
		ServiceTitle:    b.ServiceTitle,
		Car: BookingCarResponse{
			ID:          b.CarID.String(),
			Brand:       b.CarBrand,
			Model:       b.CarModel,
			Type:        b.CarType,
			PlateNumber: b.CarPlate,
		},
		Date:               b.ScheduledDate.Format(entity.DateLayout),
		Slot:               b.TimeSlot,
		Quantity:           b.Quantity,
		UnitPrice:          b.UnitPrice,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		Instructions:       b.SpecialInstructions,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.BuildingID != nil {
		id := b.BuildingID.String()
		resp.BuildingID = &id
	}

	return resp
}
