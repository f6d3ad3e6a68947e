package model

// Realtor is the tenant-scoping principal: every contact, property and lease
// belongs to exactly one realtor and is invisible to others.
type Realtor struct {
	Base
	FirstName    string  `json:"first_name" db:"first_name"`
	LastName     string  `json:"last_name" db:"last_name"`
	Email        string  `json:"email" db:"email"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Brokerage    *string `json:"brokerage,omitempty" db:"brokerage"`
	PasswordHash string  `json:"-" db:"password_hash"`
}

func (r *Realtor) FullName() string {
	return r.FirstName + " " + r.LastName
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
	Brokerage string `json:"brokerage"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Realtor *Realtor `json:"realtor"`
}
