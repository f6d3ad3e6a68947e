package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaseStatus string

const (
	LeaseStatusPending    LeaseStatus = "pending"
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

type LeaseType string

const (
	LeaseTypeFixed        LeaseType = "fixed"
	LeaseTypeMonthToMonth LeaseType = "month-to-month"
	LeaseTypeYearly       LeaseType = "yearly"
)

type Lease struct {
	Base
	RealtorID       uuid.UUID   `json:"realtor_id" db:"realtor_id"`
	PropertyID      uuid.UUID   `json:"property_id" db:"property_id"`
	TenantID        uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	LandlordID      uuid.UUID   `json:"landlord_id" db:"landlord_id"`
	StartDate       time.Time   `json:"start_date" db:"start_date"`
	EndDate         time.Time   `json:"end_date" db:"end_date"`
	MonthlyRent     float64     `json:"monthly_rent" db:"monthly_rent"`
	SecurityDeposit float64     `json:"security_deposit" db:"security_deposit"`
	LeaseType       LeaseType   `json:"lease_type" db:"lease_type"`
	Status          LeaseStatus `json:"status" db:"status"`
}

// ReminderEligible reports whether the lease can receive expiration
// reminders at all. Expired and terminated leases never do.
func (l *Lease) ReminderEligible() bool {
	return l.Status == LeaseStatusActive || l.Status == LeaseStatusPending
}

// LeaseWithRelations is the denormalized read used by the reminder engine
// and the expiring-lease views: a lease joined with its property, both
// contacts and the managing realtor.
type LeaseWithRelations struct {
	Lease
	Property Property `json:"property" db:"property"`
	Tenant   Contact  `json:"tenant" db:"tenant"`
	Landlord Contact  `json:"landlord" db:"landlord"`
	Realtor  Realtor  `json:"realtor" db:"realtor"`
}

type CreateLeaseRequest struct {
	PropertyID      uuid.UUID   `json:"property_id" binding:"required"`
	TenantID        uuid.UUID   `json:"tenant_id" binding:"required"`
	LandlordID      uuid.UUID   `json:"landlord_id" binding:"required"`
	StartDate       time.Time   `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate         time.Time   `json:"end_date" binding:"required" time_format:"2006-01-02"`
	MonthlyRent     float64     `json:"monthly_rent" binding:"required,gte=0"`
	SecurityDeposit float64     `json:"security_deposit" binding:"gte=0"`
	LeaseType       LeaseType   `json:"lease_type" binding:"required,oneof=fixed month-to-month yearly"`
	Status          LeaseStatus `json:"status" binding:"omitempty,oneof=pending active expired terminated"`
}

type UpdateLeaseRequest struct {
	StartDate       *time.Time   `json:"start_date"`
	EndDate         *time.Time   `json:"end_date"`
	MonthlyRent     *float64     `json:"monthly_rent" binding:"omitempty,gte=0"`
	SecurityDeposit *float64     `json:"security_deposit" binding:"omitempty,gte=0"`
	LeaseType       *LeaseType   `json:"lease_type" binding:"omitempty,oneof=fixed month-to-month yearly"`
	Status          *LeaseStatus `json:"status" binding:"omitempty,oneof=pending active expired terminated"`
}

// DashboardStats is the summary shown on the admin landing page.
type DashboardStats struct {
	Properties   int `json:"properties"`
	Contacts     int `json:"contacts"`
	ActiveLeases int `json:"active_leases"`
	ExpiringSoon int `json:"expiring_soon"`
}
