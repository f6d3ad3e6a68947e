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

type realtorRepository struct {
	db *sqlx.DB
}

func NewRealtorRepository(db *sqlx.DB) repository.RealtorRepository {
	return &realtorRepository{db: db}
}

func (r *realtorRepository) Create(ctx context.Context, realtor *model.Realtor) error {
	query := `
		INSERT INTO realtors (
			id, first_name, last_name, email, phone, brokerage,
			password_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	realtor.ID = uuid.New()
	realtor.CreatedAt = time.Now()
	realtor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		realtor.ID,
		realtor.FirstName,
		realtor.LastName,
		realtor.Email,
		realtor.Phone,
		realtor.Brokerage,
		realtor.PasswordHash,
		realtor.CreatedAt,
		realtor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create realtor: %w", err)
	}
	return nil
}

func (r *realtorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Realtor, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, brokerage,
			   password_hash, created_at, updated_at
		FROM realtors
		WHERE id = $1
	`
	var realtor model.Realtor
	err := r.db.GetContext(ctx, &realtor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("realtor %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get realtor: %w", err)
	}
	return &realtor, nil
}

func (r *realtorRepository) GetByEmail(ctx context.Context, email string) (*model.Realtor, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, brokerage,
			   password_hash, created_at, updated_at
		FROM realtors
		WHERE email = $1
	`
	var realtor model.Realtor
	err := r.db.GetContext(ctx, &realtor, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("realtor %s: %w", email, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get realtor by email: %w", err)
	}
	return &realtor, nil
}
