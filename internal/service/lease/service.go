package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type Service struct {
	leases     repository.LeaseRepository
	properties repository.PropertyRepository
	contacts   repository.ContactRepository

	now func() time.Time
}

func NewService(
	leases repository.LeaseRepository,
	properties repository.PropertyRepository,
	contacts repository.ContactRepository,
) *Service {
	return &Service{
		leases:     leases,
		properties: properties,
		contacts:   contacts,
		now:        time.Now,
	}
}

// Create validates that the referenced property and contacts belong to the
// realtor and have the right roles before inserting the lease.
func (s *Service) Create(ctx context.Context, realtorID uuid.UUID, req *model.CreateLeaseRequest) (*model.Lease, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.BadRequest("end date must be after start date", nil)
	}

	if _, err := s.properties.Get(ctx, realtorID, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("property does not exist", err)
		}
		return nil, apperrors.Internal(err)
	}
	if err := s.requireContact(ctx, realtorID, req.TenantID, model.ContactTypeTenant); err != nil {
		return nil, err
	}
	if err := s.requireContact(ctx, realtorID, req.LandlordID, model.ContactTypeLandlord); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.LeaseStatusActive
	}

	lease := &model.Lease{
		RealtorID:       realtorID,
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		LandlordID:      req.LandlordID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		LeaseType:       req.LeaseType,
		Status:          status,
	}

	if err := s.leases.Create(ctx, lease); err != nil {
		return nil, apperrors.Internal(err)
	}
	return lease, nil
}

func (s *Service) requireContact(ctx context.Context, realtorID, id uuid.UUID, want model.ContactType) error {
	contact, err := s.contacts.Get(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.BadRequest(fmt.Sprintf("%s does not exist", want), err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	if contact.Type != want {
		return apperrors.BadRequest(fmt.Sprintf("contact %s is not a %s", id, want), nil)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Lease, error) {
	lease, err := s.leases.Get(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("lease", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return lease, nil
}

// GetWithRelations returns the lease joined with its property and
// contacts, scoped to the realtor.
func (s *Service) GetWithRelations(ctx context.Context, realtorID, id uuid.UUID) (*model.LeaseWithRelations, error) {
	lease, err := s.leases.GetWithRelations(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("lease", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if lease.RealtorID != realtorID {
		return nil, apperrors.NotFound("lease", nil)
	}
	return lease, nil
}

func (s *Service) Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdateLeaseRequest) (*model.Lease, error) {
	lease, err := s.Get(ctx, realtorID, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		lease.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		lease.EndDate = *req.EndDate
	}
	if !lease.EndDate.After(lease.StartDate) {
		return nil, apperrors.BadRequest("end date must be after start date", nil)
	}
	if req.MonthlyRent != nil {
		lease.MonthlyRent = *req.MonthlyRent
	}
	if req.SecurityDeposit != nil {
		lease.SecurityDeposit = *req.SecurityDeposit
	}
	if req.LeaseType != nil {
		lease.LeaseType = *req.LeaseType
	}
	if req.Status != nil {
		lease.Status = *req.Status
	}

	if err := s.leases.Update(ctx, lease); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lease", err)
		}
		return nil, apperrors.Internal(err)
	}
	return lease, nil
}

// Delete removes a lease and, by cascade, its reminder records.
func (s *Service) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	err := s.leases.Delete(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("lease", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// List returns the realtor's leases, optionally filtered by status. An
// empty status means all.
func (s *Service) List(ctx context.Context, realtorID uuid.UUID, status model.LeaseStatus) ([]*model.Lease, error) {
	leases, err := s.leases.List(ctx, realtorID, status)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return leases, nil
}

// Dashboard aggregates the landing-page counts for a realtor.
func (s *Service) Dashboard(ctx context.Context, realtorID uuid.UUID) (*model.DashboardStats, error) {
	properties, err := s.properties.Count(ctx, realtorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	contacts, err := s.contacts.Count(ctx, realtorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	active, err := s.leases.CountByStatus(ctx, realtorID, model.LeaseStatusActive)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiring, err := s.leases.ListExpiringBetween(ctx, realtorID, today, today.AddDate(0, 0, 90))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.DashboardStats{
		Properties:   properties,
		Contacts:     contacts,
		ActiveLeases: active,
		ExpiringSoon: len(expiring),
	}, nil
}
