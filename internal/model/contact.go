package model

import "github.com/google/uuid"

type ContactType string

const (
	ContactTypeLandlord ContactType = "landlord"
	ContactTypeTenant   ContactType = "tenant"
)

// Contact is a landlord or tenant record owned by a realtor. Email is
// optional at creation time; leases referencing a landlord without an email
// fail the reminder precondition check until it is filled in.
type Contact struct {
	Base
	RealtorID uuid.UUID   `json:"realtor_id" db:"realtor_id"`
	Type      ContactType `json:"contact_type" db:"contact_type"`
	FirstName string      `json:"first_name" db:"first_name"`
	LastName  string      `json:"last_name" db:"last_name"`
	Email     string      `json:"email" db:"email"`
	Phone     *string     `json:"phone,omitempty" db:"phone"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

type CreateContactRequest struct {
	Type      ContactType `json:"contact_type" binding:"required,oneof=landlord tenant"`
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Email     string      `json:"email" binding:"omitempty,email"`
	Phone     string      `json:"phone"`
	Notes     string      `json:"notes"`
}

type UpdateContactRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}
