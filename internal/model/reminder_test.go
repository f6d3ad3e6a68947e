package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHorizon(t *testing.T) {
	for _, days := range ReminderHorizons {
		assert.True(t, IsValidHorizon(days))
	}
	assert.False(t, IsValidHorizon(45))
	assert.False(t, IsValidHorizon(0))
	assert.False(t, IsValidHorizon(-30))
}

func TestSweepResultSummary(t *testing.T) {
	result := &SweepResult{Outcomes: []*ReminderOutcome{
		{Status: OutcomeSent},
		{Status: OutcomeSent},
		{Status: OutcomeAlreadySent},
		{Status: OutcomeError},
	}}

	summary := result.Summary()
	assert.Equal(t, 4, summary.TotalProcessed)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.AlreadySent)
	assert.Equal(t, 1, summary.Errors)
}

func TestReminderEligible(t *testing.T) {
	assert.True(t, (&Lease{Status: LeaseStatusActive}).ReminderEligible())
	assert.True(t, (&Lease{Status: LeaseStatusPending}).ReminderEligible())
	assert.False(t, (&Lease{Status: LeaseStatusExpired}).ReminderEligible())
	assert.False(t, (&Lease{Status: LeaseStatusTerminated}).ReminderEligible())
}

func TestPropertyAddress(t *testing.T) {
	p := &Property{Street: "14 Maple Ct", City: "Portland", State: "OR", ZipCode: "97201"}
	assert.Equal(t, "14 Maple Ct, Portland, OR, 97201", p.Address())

	assert.Equal(t, "Portland, OR", (&Property{City: "Portland", State: "OR"}).Address())
	assert.Equal(t, "Unknown Address", (&Property{}).Address())
}
