package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lorrc/users-api/internal/core/domain"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
	"github.com/lorrc/users-api/internal/core/ports"
)

// UserRepository keeps users in process memory. It is meant for local
// development and tests; nothing survives a restart.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
	order []uuid.UUID
}

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.SchemaInitializer = (*UserRepository)(nil)
)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]domain.User)}
}

// EnsureSchema is a no-op.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	return checkContext(ctx)
}

// FindAll returns users in insertion order.
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		user := r.users[id]
		result = append(result, &user)
	}
	return result, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound(id)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	user := domain.NewUser(req)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return nil, apperrors.DatabaseError("duplicate user id", nil)
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)

	stored := *user
	return &stored, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound(id)
	}

	merged := req.ApplyTo(current)
	r.users[id] = merged
	return &merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return nil
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping reports the store as always reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.DatabaseError("request canceled", err)
	}
	return nil
}
