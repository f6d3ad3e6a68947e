package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type Service struct {
	contacts repository.ContactRepository
}

func NewService(contacts repository.ContactRepository) *Service {
	return &Service{contacts: contacts}
}

func (s *Service) Create(ctx context.Context, realtorID uuid.UUID, req *model.CreateContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		RealtorID: realtorID,
		Type:      req.Type,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Phone != "" {
		contact.Phone = &req.Phone
	}
	if req.Notes != "" {
		contact.Notes = &req.Notes
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.Internal(err)
	}
	return contact, nil
}

func (s *Service) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Contact, error) {
	contact, err := s.contacts.Get(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("contact", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdateContactRequest) (*model.Contact, error) {
	contact, err := s.Get(ctx, realtorID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Notes != nil {
		contact.Notes = req.Notes
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("contact", err)
		}
		return nil, apperrors.Internal(err)
	}
	return contact, nil
}

// Delete removes a contact. The database rejects the delete while a lease
// still references the contact; that surfaces as a conflict.
func (s *Service) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	err := s.contacts.Delete(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("contact", err)
	}
	if errors.Is(err, repository.ErrInUse) {
		return apperrors.Conflict("contact is referenced by a lease", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// List returns the realtor's contacts, optionally filtered by type. An
// empty contactType means all.
func (s *Service) List(ctx context.Context, realtorID uuid.UUID, contactType model.ContactType) ([]*model.Contact, error) {
	contacts, err := s.contacts.List(ctx, realtorID, contactType)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return contacts, nil
}
