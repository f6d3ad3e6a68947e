package email

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rentaltrack/rental-api/internal/model"
)

func sampleLease() *model.LeaseWithRelations {
	brokerage := "Hilltop Realty"
	return &model.LeaseWithRelations{
		Lease: model.Lease{
			Base:            model.Base{ID: uuid.New()},
			EndDate:         time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			MonthlyRent:     2100.50,
			SecurityDeposit: 4200,
			LeaseType:       model.LeaseTypeFixed,
		},
		Property: model.Property{
			Title:  "Maple Court 2B",
			Street: "14 Maple Ct",
			City:   "Portland",
			State:  "OR",
		},
		Tenant:   model.Contact{FirstName: "Tia", LastName: "Moss", Email: "tia@example.com"},
		Landlord: model.Contact{FirstName: "Lena", LastName: "Ortiz", Email: "lena@example.com"},
		Realtor: model.Realtor{
			FirstName: "Ray", LastName: "Chen", Email: "ray@example.com",
			Brokerage: &brokerage,
		},
	}
}

func TestReminderSubjectIncludesHorizon(t *testing.T) {
	assert.Equal(t, "Lease Expiration Reminder - 90 Days Notice", reminderSubject(90))
	assert.Equal(t, "Lease Expiration Reminder - 30 Days Notice", reminderSubject(30))
}

func TestLandlordBodyContent(t *testing.T) {
	body := landlordBody(sampleLease(), 60, "Rental Tracker")

	assert.Contains(t, body, "Lena Ortiz")
	assert.Contains(t, body, "60 days")
	assert.Contains(t, body, "14 Maple Ct, Portland, OR")
	assert.Contains(t, body, "June 15, 2026")
	assert.Contains(t, body, "$2100.50")
	assert.Contains(t, body, "Ray Chen")
	assert.Contains(t, body, "Hilltop Realty")
	assert.Contains(t, body, "Rental Tracker")
}

func TestRealtorBodyContent(t *testing.T) {
	lease := sampleLease()
	body := realtorBody(lease, 30, "Rental Tracker")

	assert.Contains(t, body, "Ray")
	assert.Contains(t, body, lease.ID.String())
	assert.Contains(t, body, "Tia Moss")
	assert.Contains(t, body, "lena@example.com")
	assert.Contains(t, body, "$4200.00")
}
