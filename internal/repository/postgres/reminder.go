package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
)

// uniqueViolation is the Postgres error code raised when an insert hits
// the (lease_id, reminder_days) uniqueness constraint.
const uniqueViolation = "23505"

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Exists(ctx context.Context, leaseID uuid.UUID, days int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lease_reminders
			WHERE lease_id = $1 AND reminder_days = $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, leaseID, days)
	if err != nil {
		return false, fmt.Errorf("failed to check reminder record: %w", err)
	}
	return exists, nil
}

func (r *reminderRepository) Insert(ctx context.Context, record *model.ReminderRecord) (model.ReminderInsertStatus, error) {
	query := `
		INSERT INTO lease_reminders (id, lease_id, reminder_days, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	record.ID = uuid.New()
	if record.SentAt.IsZero() {
		record.SentAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.LeaseID,
		record.ReminderDays,
		record.SentAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.ReminderDuplicate, nil
		}
		return 0, fmt.Errorf("failed to record reminder: %w", err)
	}
	return model.ReminderInserted, nil
}

func (r *reminderRepository) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*model.ReminderRecord, error) {
	query := `
		SELECT id, lease_id, reminder_days, sent_at
		FROM lease_reminders
		WHERE lease_id = $1
		ORDER BY sent_at DESC
	`
	records := []*model.ReminderRecord{}
	err := r.db.SelectContext(ctx, &records, query, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder records: %w", err)
	}
	return records, nil
}
