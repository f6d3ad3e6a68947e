package property

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type Service struct {
	properties repository.PropertyRepository
}

func NewService(properties repository.PropertyRepository) *Service {
	return &Service{properties: properties}
}

func (s *Service) Create(ctx context.Context, realtorID uuid.UUID, req *model.CreatePropertyRequest) (*model.Property, error) {
	property := &model.Property{
		RealtorID: realtorID,
		Title:     req.Title,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
	}
	if req.Notes != "" {
		property.Notes = &req.Notes
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, apperrors.Internal(err)
	}
	return property, nil
}

func (s *Service) Get(ctx context.Context, realtorID, id uuid.UUID) (*model.Property, error) {
	property, err := s.properties.Get(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("property", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return property, nil
}

func (s *Service) Update(ctx context.Context, realtorID, id uuid.UUID, req *model.UpdatePropertyRequest) (*model.Property, error) {
	property, err := s.Get(ctx, realtorID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Street != nil {
		property.Street = *req.Street
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.State != nil {
		property.State = *req.State
	}
	if req.ZipCode != nil {
		property.ZipCode = *req.ZipCode
	}
	if req.Notes != nil {
		property.Notes = req.Notes
	}

	if err := s.properties.Update(ctx, property); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("property", err)
		}
		return nil, apperrors.Internal(err)
	}
	return property, nil
}

func (s *Service) Delete(ctx context.Context, realtorID, id uuid.UUID) error {
	err := s.properties.Delete(ctx, realtorID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("property", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, realtorID uuid.UUID) ([]*model.Property, error) {
	properties, err := s.properties.List(ctx, realtorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return properties, nil
}
