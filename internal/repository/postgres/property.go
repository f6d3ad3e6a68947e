package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
)

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	query := `
		INSERT INTO properties (
			id, realtor_id, title, street, city, state, zip_code,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	property.ID = uuid.New()
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.RealtorID,
		property.Title,
		property.Street,
		property.City,
		property.State,
		property.ZipCode,
		property.Notes,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *propertyRepository) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Property, error) {
	query := `
		SELECT id, realtor_id, title, street, city, state, zip_code,
			   notes, created_at, updated_at
		FROM properties
		WHERE id = $1 AND realtor_id = $2
	`
	var property model.Property
	err := r.db.GetContext(ctx, &property, query, id, realtorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("property %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	query := `
		UPDATE properties
		SET title = $1, street = $2, city = $3, state = $4,
			zip_code = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND realtor_id = $9
	`
	property.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		property.Title,
		property.Street,
		property.City,
		property.State,
		property.ZipCode,
		property.Notes,
		property.UpdatedAt,
		property.ID,
		property.RealtorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %s: %w", property.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1 AND realtor_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, realtorID)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *propertyRepository) List(ctx context.Context, realtorID uuid.UUID) ([]*model.Property, error) {
	query := `
		SELECT id, realtor_id, title, street, city, state, zip_code,
			   notes, created_at, updated_at
		FROM properties
		WHERE realtor_id = $1
		ORDER BY title ASC
	`
	properties := []*model.Property{}
	err := r.db.SelectContext(ctx, &properties, query, realtorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *propertyRepository) Count(ctx context.Context, realtorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM properties WHERE realtor_id = $1`, realtorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}
