package model

import (
	"strings"

	"github.com/google/uuid"
)

type Property struct {
	Base
	RealtorID uuid.UUID `json:"realtor_id" db:"realtor_id"`
	Title     string    `json:"title" db:"title"`
	Street    string    `json:"street" db:"street"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	ZipCode   string    `json:"zip_code" db:"zip_code"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
}

// Address joins the non-empty address parts for display and email content.
func (p *Property) Address() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Street, p.City, p.State, p.ZipCode} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "Unknown Address"
	}
	return strings.Join(parts, ", ")
}

type CreatePropertyRequest struct {
	Title   string `json:"title" binding:"required"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Notes   string `json:"notes"`
}

type UpdatePropertyRequest struct {
	Title   *string `json:"title"`
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
	Notes   *string `json:"notes"`
}
