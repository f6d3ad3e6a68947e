package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentaltrack/rental-api/internal/model"
	"github.com/rentaltrack/rental-api/internal/repository"
	"github.com/rentaltrack/rental-api/pkg/auth"
	apperrors "github.com/rentaltrack/rental-api/pkg/errors"
)

type Service struct {
	realtors repository.RealtorRepository
	tokens   *auth.JWTManager
}

func NewService(realtors repository.RealtorRepository, tokens *auth.JWTManager) *Service {
	return &Service{realtors: realtors, tokens: tokens}
}

// Register creates a realtor account. The email must be unique.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	if _, err := s.realtors.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	realtor := &model.Realtor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if req.Phone != "" {
		realtor.Phone = &req.Phone
	}
	if req.Brokerage != "" {
		realtor.Brokerage = &req.Brokerage
	}

	if err := s.realtors.Create(ctx, realtor); err != nil {
		return nil, apperrors.Internal(err)
	}

	token, err := s.tokens.Generate(realtor.ID, realtor.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{Token: token, Realtor: realtor}, nil
}

// Login verifies credentials and issues a JWT. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	realtor, err := s.realtors.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(realtor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	token, err := s.tokens.Generate(realtor.ID, realtor.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.LoginResponse{Token: token, Realtor: realtor}, nil
}

// Profile returns the authenticated realtor's own record.
func (s *Service) Profile(ctx context.Context, realtorID uuid.UUID) (*model.Realtor, error) {
	realtor, err := s.realtors.Get(ctx, realtorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("realtor", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return realtor, nil
}
