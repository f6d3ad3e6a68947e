package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
)

// foreignKeyViolation is raised when a contact is deleted while a lease
// still references it; leases do not cascade from contacts.
const foreignKeyViolation = "23503"

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (
			id, realtor_id, contact_type, first_name, last_name,
			email, phone, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
	`
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.RealtorID,
		contact.Type,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Notes,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *contactRepository) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Contact, error) {
	query := `
		SELECT id, realtor_id, contact_type, first_name, last_name,
			   COALESCE(email, '') AS email, phone, notes, created_at, updated_at
		FROM contacts
		WHERE id = $1 AND realtor_id = $2
	`
	var contact model.Contact
	err := r.db.GetContext(ctx, &contact, query, id, realtorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $1, last_name = $2, email = NULLIF($3, ''),
			phone = $4, notes = $5, updated_at = $6
		WHERE id = $7 AND realtor_id = $8
	`
	contact.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Notes,
		contact.UpdatedAt,
		contact.ID,
		contact.RealtorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("contact %s: %w", contact.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1 AND realtor_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, realtorID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return fmt.Errorf("contact %s: %w", id, repository.ErrInUse)
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("contact %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *contactRepository) List(ctx context.Context, realtorID uuid.UUID, contactType model.ContactType) ([]*model.Contact, error) {
	query := `
		SELECT id, realtor_id, contact_type, first_name, last_name,
			   COALESCE(email, '') AS email, phone, notes, created_at, updated_at
		FROM contacts
		WHERE realtor_id = $1
	`
	args := []interface{}{realtorID}

	if contactType != "" {
		query += " AND contact_type = $2"
		args = append(args, contactType)
	}

	query += " ORDER BY last_name ASC, first_name ASC"

	contacts := []*model.Contact{}
	err := r.db.SelectContext(ctx, &contacts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) Count(ctx context.Context, realtorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM contacts WHERE realtor_id = $1`, realtorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}
