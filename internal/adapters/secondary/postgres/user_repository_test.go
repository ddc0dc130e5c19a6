package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lorrc/users-api/internal/core/domain"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
)

func newTestRepo(t *testing.T) *UserRepository {
	t.Helper()
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	return NewUserRepository(testPool)
}

func TestUserRepository_EnsureSchemaIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestUserRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, domain.CreateUserRequest{Name: "Test User", Email: "test.user@example.com"})
	require.NoError(t, err, "Failed to create user")
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err, "Failed to get user by ID")
	assert.Equal(t, created, found)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	id := uuid.New()

	_, err := repo.FindByID(context.Background(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	userErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, id, userErr.ID)
}

func TestUserRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, domain.CreateUserRequest{Name: "Listed", Email: "listed@example.com"})
	require.NoError(t, err)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)

	var found bool
	for _, u := range users {
		if u.ID == created.ID {
			found = true
			assert.Equal(t, created, u)
		}
	}
	assert.True(t, found, "created user missing from FindAll")
}

func TestUserRepository_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, domain.CreateUserRequest{Name: "Before", Email: "keep@example.com"})
	require.NoError(t, err)

	name := "After"
	req := domain.UpdateUserRequest{Name: &name}

	updated, err := repo.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "keep@example.com", updated.Email)

	again, err := repo.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, updated, again)

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	name := "ghost"

	_, err := repo.Update(context.Background(), uuid.New(), domain.UpdateUserRequest{Name: &name})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, domain.CreateUserRequest{Name: "Doomed", Email: "doomed@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// deleting an unknown id is not an error
	assert.NoError(t, repo.Delete(ctx, created.ID))
}

func TestUserRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	const n = 20
	var (
		mu  sync.Mutex
		ids = make(map[uuid.UUID]struct{}, n)
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			user, err := repo.Create(gctx, domain.CreateUserRequest{
				Name:  fmt.Sprintf("user-%d", i),
				Email: fmt.Sprintf("user-%d@example.com", i),
			})
			if err != nil {
				return err
			}
			mu.Lock()
			ids[user.ID] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, ids, n)

	for id := range ids {
		_, err := repo.FindByID(ctx, id)
		assert.NoError(t, err)
	}
}

func TestUserRepository_CanceledContext(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindAll(ctx)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}
