package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lorrc/users-api/internal/core/domain"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
	"github.com/lorrc/users-api/internal/core/ports"
)

// UserService implements business logic for users on top of any
// ports.UserRepository.
type UserService struct {
	userRepo ports.UserRepository
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService creates a new UserService.
func NewUserService(userRepo ports.UserRepository) ports.UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUsers returns all users.
func (s *UserService) GetUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// CreateUser validates the request and persists a new user. Name is checked
// before email so the reported error is deterministic.
func (s *UserService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, apperrors.ValidationError("name must not be empty")
	}
	if req.Email == "" {
		return nil, apperrors.ValidationError("email must not be empty")
	}

	return s.userRepo.Create(ctx, req)
}

// UpdateUser applies a partial update.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req domain.UpdateUserRequest) (*domain.User, error) {
	return s.userRepo.Update(ctx, id, req)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
