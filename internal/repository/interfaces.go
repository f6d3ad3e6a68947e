package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/model"
)

// ErrNotFound is returned when a scoped lookup matches no row. Lookups are
// realtor-scoped wherever a principal is involved, so a foreign realtor's
// record is indistinguishable from a missing one.
var ErrNotFound = errors.New("not found")

// ErrInUse is returned when a delete is blocked by a row that still
// references the target.
var ErrInUse = errors.New("resource in use")

// All repository interfaces in one file
type (
	RealtorRepository interface {
		Create(ctx context.Context, realtor *model.Realtor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Realtor, error)
		GetByEmail(ctx context.Context, email string) (*model.Realtor, error)
	}

	ContactRepository interface {
		Create(ctx context.Context, contact *model.Contact) error
		Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Contact, error)
		Update(ctx context.Context, contact *model.Contact) error
		Delete(ctx context.Context, realtorID, id uuid.UUID) error
		List(ctx context.Context, realtorID uuid.UUID, contactType model.ContactType) ([]*model.Contact, error)
		Count(ctx context.Context, realtorID uuid.UUID) (int, error)
	}

	PropertyRepository interface {
		Create(ctx context.Context, property *model.Property) error
		Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Property, error)
		Update(ctx context.Context, property *model.Property) error
		Delete(ctx context.Context, realtorID, id uuid.UUID) error
		List(ctx context.Context, realtorID uuid.UUID) ([]*model.Property, error)
		Count(ctx context.Context, realtorID uuid.UUID) (int, error)
	}

	LeaseRepository interface {
		Create(ctx context.Context, lease *model.Lease) error
		Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error)
		// GetWithRelations is unscoped; callers enforce ownership where a
		// principal is present (the sweep has none).
		GetWithRelations(ctx context.Context, id uuid.UUID) (*model.LeaseWithRelations, error)
		Update(ctx context.Context, lease *model.Lease) error
		Delete(ctx context.Context, realtorID, id uuid.UUID) error
		List(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) ([]*model.Lease, error)
		// ListExpiringOn returns active and pending leases across all
		// realtors whose end date equals the given calendar date.
		ListExpiringOn(ctx context.Context, date time.Time) ([]*model.LeaseWithRelations, error)
		// ListExpiringBetween returns a realtor's active and pending leases
		// ending within [start, end], ordered by end date ascending.
		ListExpiringBetween(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error)
		CountByStatus(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) (int, error)
	}

	// ReminderRepository is the dedup ledger. Insert relies on the storage
	// uniqueness constraint as the final arbiter; Exists is advisory.
	ReminderRepository interface {
		Exists(ctx context.Context, leaseID uuid.UUID, days int) (bool, error)
		Insert(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error)
		ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*model.ReminderRecord, error)
	}
)
