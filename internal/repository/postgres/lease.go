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

type leaseRepository struct {
	db *sqlx.DB
}

func NewLeaseRepository(db *sqlx.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

// leaseRelationsSelect joins a lease with its property, both contacts and
// the managing realtor. Contact emails are coalesced so a missing email
// scans as an empty string, which the reminder precondition check treats
// as unset.
const leaseRelationsSelect = `
	SELECT l.id, l.realtor_id, l.property_id, l.tenant_id, l.landlord_id,
		   l.start_date, l.end_date, l.monthly_rent, l.security_deposit,
		   l.lease_type, l.status, l.created_at, l.updated_at,
		   p.id AS "property.id", p.realtor_id AS "property.realtor_id",
		   p.title AS "property.title", p.street AS "property.street",
		   p.city AS "property.city", p.state AS "property.state",
		   p.zip_code AS "property.zip_code", p.notes AS "property.notes",
		   p.created_at AS "property.created_at", p.updated_at AS "property.updated_at",
		   t.id AS "tenant.id", t.realtor_id AS "tenant.realtor_id",
		   t.contact_type AS "tenant.contact_type",
		   t.first_name AS "tenant.first_name", t.last_name AS "tenant.last_name",
		   COALESCE(t.email, '') AS "tenant.email", t.phone AS "tenant.phone",
		   t.notes AS "tenant.notes",
		   t.created_at AS "tenant.created_at", t.updated_at AS "tenant.updated_at",
		   ll.id AS "landlord.id", ll.realtor_id AS "landlord.realtor_id",
		   ll.contact_type AS "landlord.contact_type",
		   ll.first_name AS "landlord.first_name", ll.last_name AS "landlord.last_name",
		   COALESCE(ll.email, '') AS "landlord.email", ll.phone AS "landlord.phone",
		   ll.notes AS "landlord.notes",
		   ll.created_at AS "landlord.created_at", ll.updated_at AS "landlord.updated_at",
		   r.id AS "realtor.id", r.first_name AS "realtor.first_name",
		   r.last_name AS "realtor.last_name", r.email AS "realtor.email",
		   r.phone AS "realtor.phone", r.brokerage AS "realtor.brokerage",
		   '' AS "realtor.password_hash",
		   r.created_at AS "realtor.created_at", r.updated_at AS "realtor.updated_at"
	FROM leases l
	JOIN properties p ON p.id = l.property_id
	JOIN contacts t ON t.id = l.tenant_id
	JOIN contacts ll ON ll.id = l.landlord_id
	JOIN realtors r ON r.id = l.realtor_id
`

func (r *leaseRepository) Create(ctx context.Context, lease *model.Lease) error {
	query := `
		INSERT INTO leases (
			id, realtor_id, property_id, tenant_id, landlord_id,
			start_date, end_date, monthly_rent, security_deposit,
			lease_type, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	lease.ID = uuid.New()
	lease.CreatedAt = time.Now()
	lease.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		lease.ID,
		lease.RealtorID,
		lease.PropertyID,
		lease.TenantID,
		lease.LandlordID,
		lease.StartDate,
		lease.EndDate,
		lease.MonthlyRent,
		lease.SecurityDeposit,
		lease.LeaseType,
		lease.Status,
		lease.CreatedAt,
		lease.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}
	return nil
}

func (r *leaseRepository) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error) {
	query := `
		SELECT id, realtor_id, property_id, tenant_id, landlord_id,
			   start_date, end_date, monthly_rent, security_deposit,
			   lease_type, status, created_at, updated_at
		FROM leases
		WHERE id = $1 AND realtor_id = $2
	`
	var lease model.Lease
	err := r.db.GetContext(ctx, &lease, query, id, realtorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lease %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}
	return &lease, nil
}

func (r *leaseRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*model.LeaseWithRelations, error) {
	query := leaseRelationsSelect + ` WHERE l.id = $1`

	var lease model.LeaseWithRelations
	err := r.db.GetContext(ctx, &lease, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lease %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lease with relations: %w", err)
	}
	return &lease, nil
}

func (r *leaseRepository) Update(ctx context.Context, lease *model.Lease) error {
	query := `
		UPDATE leases
		SET start_date = $1, end_date = $2, monthly_rent = $3,
			security_deposit = $4, lease_type = $5, status = $6, updated_at = $7
		WHERE id = $8 AND realtor_id = $9
	`
	lease.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		lease.StartDate,
		lease.EndDate,
		lease.MonthlyRent,
		lease.SecurityDeposit,
		lease.LeaseType,
		lease.Status,
		lease.UpdatedAt,
		lease.ID,
		lease.RealtorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lease %s: %w", lease.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *leaseRepository) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	query := `DELETE FROM leases WHERE id = $1 AND realtor_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, realtorID)
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lease %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *leaseRepository) List(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) ([]*model.Lease, error) {
	query := `
		SELECT id, realtor_id, property_id, tenant_id, landlord_id,
			   start_date, end_date, monthly_rent, security_deposit,
			   lease_type, status, created_at, updated_at
		FROM leases
		WHERE realtor_id = $1
	`
	args := []interface{}{realtorID}

	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}

	query += " ORDER BY end_date ASC"

	leases := []*model.Lease{}
	err := r.db.SelectContext(ctx, &leases, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	return leases, nil
}

func (r *leaseRepository) ListExpiringOn(ctx context.Context, date time.Time) ([]*model.LeaseWithRelations, error) {
	query := leaseRelationsSelect + `
		WHERE l.end_date = $1
		AND l.status IN ('active', 'pending')
		ORDER BY l.created_at ASC
	`

	leases := []*model.LeaseWithRelations{}
	err := r.db.SelectContext(ctx, &leases, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list leases expiring on %s: %w", date.Format("2006-01-02"), err)
	}
	return leases, nil
}

func (r *leaseRepository) ListExpiringBetween(ctx context.Context, realtorID uuid.UUID, start, end time.Time) ([]*model.LeaseWithRelations, error) {
	query := leaseRelationsSelect + `
		WHERE l.realtor_id = $1
		AND l.end_date BETWEEN $2 AND $3
		AND l.status IN ('active', 'pending')
		ORDER BY l.end_date ASC
	`

	leases := []*model.LeaseWithRelations{}
	err := r.db.SelectContext(ctx, &leases, query, realtorID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list leases expiring between %s and %s: %w",
			start.Format("2006-01-02"), end.Format("2006-01-02"), err)
	}
	return leases, nil
}

func (r *leaseRepository) CountByStatus(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM leases WHERE realtor_id = $1 AND status = $2`, realtorID, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count leases: %w", err)
	}
	return count, nil
}
