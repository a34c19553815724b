package entity

import (
	"strings"

	"github.com/google/uuid"
)

type CarType string

const (
	CarTypeSedan      CarType = "Sedan"
	CarTypeSUV        CarType = "SUV"
	CarTypeVan        CarType = "Van"
	CarTypeMotorcycle CarType = "Motorcycle"
)

func (t CarType) IsValid() bool {
	switch t {
	case CarTypeSedan, CarTypeSUV, CarTypeVan, CarTypeMotorcycle:
		return true
	}
	return false
}

type Car struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Brand       *string   `db:"brand"`
	Model       *string   `db:"model"`
	Type        CarType   `db:"car_type"`
	PlateNumber string    `db:"plate_number"`
	Year        *int      `db:"year"`
	Parking     *string   `db:"parking"`
	Flat        *string   `db:"flat"`
}

// NormalizePlate uppercases and trims a plate so uniqueness ignores formatting noise.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}
