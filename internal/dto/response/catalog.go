package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       int64            `json:"price"`
	Category    string           `json:"category"`
	CarTypes    []entity.CarType `json:"car_types"`
	IsActive    bool             `json:"is_active"`
}

type CarResponse struct {
	ID          string         `json:"id"`
	Brand       *string        `json:"brand,omitempty"`
	Model       *string        `json:"model,omitempty"`
	Type        entity.CarType `json:"type"`
	PlateNumber string         `json:"plate_number"`
	Year        *int           `json:"year,omitempty"`
	Parking     *string        `json:"parking,omitempty"`
	Flat        *string        `json:"flat,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type BuildingResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// Helper converters
func ServiceToResponse(service *entity.Service) ServiceResponse {
	carTypes := service.CarTypes
	if carTypes == nil {
		carTypes = []entity.CarType{}
	}
	return ServiceResponse{
		ID:          service.ID.String(),
		Title:       service.Title,
		Description: service.Description,
		Price:       service.Price,
		Category:    service.Category,
		CarTypes:    carTypes,
		IsActive:    service.IsActive,
	}
}

func CarToResponse(car *entity.Car) CarResponse {
	return CarResponse{
		ID:          car.ID.String(),
		Brand:       car.Brand,
		Model:       car.Model,
		Type:        car.Type,
		PlateNumber: car.PlateNumber,
		Year:        car.Year,
		Parking:     car.Parking,
		Flat:        car.Flat,
		CreatedAt:   car.CreatedAt,
	}
}

func BuildingToResponse(b *entity.Building) BuildingResponse {
	return BuildingResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		Country:   b.Country,
		IsDefault: b.IsDefault,
	}
}
