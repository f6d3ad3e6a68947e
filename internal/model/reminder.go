package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderHorizons are the fixed day counts before lease expiration at
// which a reminder is due, in sweep order.
var ReminderHorizons = []int{90, 60, 30}

func IsValidHorizon(days int) bool {
	for _, h := range ReminderHorizons {
		if h == days {
			return true
		}
	}
	return false
}

// ReminderRecord is the dedup ledger entry. At most one row exists per
// (lease, horizon) pair, enforced by a database uniqueness constraint.
// Rows are never updated or deleted except by lease cascade.
type ReminderRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	LeaseID      uuid.UUID `json:"lease_id" db:"lease_id"`
	ReminderDays int       `json:"reminder_days" db:"reminder_days"`
	SentAt       time.Time `json:"sent_at" db:"sent_at"`
}

// ReminderInsertStatus is the typed result of a ledger insert, so the
// conflict-is-success branch in the dispatcher is explicit instead of
// hidden behind driver error-code inspection.
type ReminderInsertStatus int

const (
	ReminderInserted ReminderInsertStatus = iota
	ReminderDuplicate
)

type OutcomeStatus string

const (
	OutcomeSent        OutcomeStatus = "sent"
	OutcomeAlreadySent OutcomeStatus = "already_sent"
	OutcomeError       OutcomeStatus = "error"
)

// ReminderOutcome records what happened to one (lease, horizon) pair
// during a sweep.
type ReminderOutcome struct {
	LeaseID  uuid.UUID     `json:"lease_id"`
	Days     int           `json:"days"`
	Property string        `json:"property"`
	Landlord string        `json:"landlord"`
	Status   OutcomeStatus `json:"status"`
	Error    string        `json:"error,omitempty"`
}

// SweepResult collects the per-item outcomes of one check-and-send run.
// ScanErrors holds horizon-level scan failures keyed by horizon days;
// those horizons contributed no outcomes but did not abort the others.
type SweepResult struct {
	Outcomes   []*ReminderOutcome `json:"outcomes"`
	ScanErrors map[int]string     `json:"scan_errors,omitempty"`
}

type SweepSummary struct {
	TotalProcessed int `json:"total_processed"`
	Sent           int `json:"reminders_sent"`
	AlreadySent    int `json:"already_sent"`
	Errors         int `json:"errors"`
}

func (r *SweepResult) Summary() SweepSummary {
	s := SweepSummary{TotalProcessed: len(r.Outcomes)}
	for _, o := range r.Outcomes {
		switch o.Status {
		case OutcomeSent:
			s.Sent++
		case OutcomeAlreadySent:
			s.AlreadySent++
		case OutcomeError:
			s.Errors++
		}
	}
	return s
}

// ReminderStats buckets a realtor's expiring leases by horizon and by
// expiration month (YYYY-MM keys).
type ReminderStats struct {
	TotalExpiring  int            `json:"total_expiring"`
	Expiring30Days int            `json:"expiring_30_days"`
	Expiring60Days int            `json:"expiring_60_days"`
	Expiring90Days int            `json:"expiring_90_days"`
	ByMonth        map[string]int `json:"by_month"`
}
