package email

import (
	"fmt"
	"strings"

	"github.com/rentaltrack/rental-api/internal/model"
)

func reminderSubject(days int) string {
	return fmt.Sprintf("Lease Expiration Reminder - %d Days Notice", days)
}

func landlordBody(lease *model.LeaseWithRelations, days int, companyName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>Lease Expiration Reminder</h1>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", lease.Landlord.FullName())
	fmt.Fprintf(&b, "<p><strong>Important:</strong> your lease agreement will expire in <strong>%d days</strong>.</p>", days)

	fmt.Fprintf(&b, "<h3>Lease Details</h3><ul>")
	fmt.Fprintf(&b, "<li>Property: %s</li>", lease.Property.Address())
	fmt.Fprintf(&b, "<li>Tenant: %s</li>", lease.Tenant.FullName())
	fmt.Fprintf(&b, "<li>Lease End Date: %s</li>", lease.EndDate.Format("January 2, 2006"))
	fmt.Fprintf(&b, "<li>Monthly Rent: $%.2f</li>", lease.MonthlyRent)
	fmt.Fprintf(&b, "<li>Lease Type: %s</li>", lease.LeaseType)
	fmt.Fprintf(&b, "</ul>")

	fmt.Fprintf(&b, "<h3>Your Realtor</h3>")
	fmt.Fprintf(&b, "<p>%s (%s)</p>", lease.Realtor.FullName(), lease.Realtor.Email)
	if lease.Realtor.Brokerage != nil {
		fmt.Fprintf(&b, "<p>%s</p>", *lease.Realtor.Brokerage)
	}

	fmt.Fprintf(&b, "<p>Please contact your realtor to discuss renewal options.</p>")
	fmt.Fprintf(&b, "<p>This is an automated reminder from %s.</p>", companyName)

	return b.String()
}

func realtorBody(lease *model.LeaseWithRelations, days int, companyName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>Internal: Lease Expiration Alert</h1>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", lease.Realtor.FirstName)
	fmt.Fprintf(&b, "<p>One of your managed leases will expire in <strong>%d days</strong>.</p>", days)

	fmt.Fprintf(&b, "<h3>Lease Information</h3><ul>")
	fmt.Fprintf(&b, "<li>Lease ID: %s</li>", lease.ID)
	fmt.Fprintf(&b, "<li>Property: %s</li>", lease.Property.Address())
	fmt.Fprintf(&b, "<li>Tenant: %s (%s)</li>", lease.Tenant.FullName(), lease.Tenant.Email)
	fmt.Fprintf(&b, "<li>Landlord: %s (%s)</li>", lease.Landlord.FullName(), lease.Landlord.Email)
	fmt.Fprintf(&b, "<li>Lease End Date: %s</li>", lease.EndDate.Format("January 2, 2006"))
	fmt.Fprintf(&b, "<li>Monthly Rent: $%.2f</li>", lease.MonthlyRent)
	fmt.Fprintf(&b, "<li>Security Deposit: $%.2f</li>", lease.SecurityDeposit)
	fmt.Fprintf(&b, "</ul>")

	fmt.Fprintf(&b, "<p>A copy of this reminder was sent to the landlord with your contact information.</p>")
	fmt.Fprintf(&b, "<p>%s</p>", companyName)

	return b.String()
}
