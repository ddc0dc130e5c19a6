package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/lorrc/users-api/internal/core/domain"
)

// UserRepository is the persistence port for users. Every error returned by
// an implementation is an *errors.UserError; backend error types never cross
// this boundary.
type UserRepository interface {
	// FindAll returns every stored user in backend-defined order. An empty
	// store yields an empty slice.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByID returns errors.NotFound(id) when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Create assigns a fresh identifier and persists the user.
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	// Update merges req over the stored record. Concurrent updates of the
	// same id are last-write-wins.
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateUserRequest) (*domain.User, error)
	// Delete removes the record if present. Deleting an unknown id succeeds.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SchemaInitializer is implemented by adapters that must prepare their
// storage before serving traffic. EnsureSchema is idempotent.
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}
