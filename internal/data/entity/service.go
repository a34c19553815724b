package entity

// Service is a catalog entry. Prices are integer minor units.
type Service struct {
	BaseNoDelete
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       int64     `db:"price_minor"`
	Category    string    `db:"category"`
	CarTypes    []CarType `db:"car_types"`
	IsActive    bool      `db:"is_active"`
}

// AppliesTo reports whether the service can be performed on the given car type.
// A service without car types applies to all of them.
func (s *Service) AppliesTo(carType CarType) bool {
	if len(s.CarTypes) == 0 {
		return true
	}
	for _, t := range s.CarTypes {
		if t == carType {
			return true
		}
	}
	return false
}

// ServiceFilter narrows a catalog listing. Nil fields impose no constraint.
type ServiceFilter struct {
	Category *string
	CarType  *CarType
	MinPrice *int64
	MaxPrice *int64
}

// Matches applies every supplied constraint (AND).
func (f ServiceFilter) Matches(s *Service) bool {
	if f.Category != nil && s.Category != *f.Category {
		return false
	}
	if f.CarType != nil && !s.AppliesTo(*f.CarType) {
		return false
	}
	if f.MinPrice != nil && s.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		return false
	}
	return true
}
