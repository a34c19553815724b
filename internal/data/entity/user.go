package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Phone     string   `db:"phone"`
	FirstName *string  `db:"first_name"`
	LastName  *string  `db:"last_name"`
	Email     *string  `db:"email"`
	Role      UserRole `db:"role"`
	IsActive  bool     `db:"is_active"`
}
