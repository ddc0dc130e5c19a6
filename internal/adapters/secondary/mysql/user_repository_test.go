package mysql

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
	require.NotNil(t, testDB, "testDB is nil. TestMain may not have run.")
	return NewUserRepository(testDB)
}

func TestUserRepository_EnsureSchemaIsIdempotent(t *testing.T) {
	require.NoError(t, newTestRepo(t).EnsureSchema(context.Background()))
}

func TestUserRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.Create(ctx, domain.CreateUserRequest{Name: "Test User", Email: "test.user@example.com"})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, created)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	_, err := newTestRepo(t).FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
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

	// unchanged row: MySQL reports zero affected rows, must not be NotFound
	again, err := repo.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, updated, again)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	name := "ghost"

	_, err := newTestRepo(t).Update(context.Background(), uuid.New(), domain.UpdateUserRequest{Name: &name})

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
	assert.NoError(t, repo.Delete(ctx, created.ID))
}

func TestUserRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	const n = 10
	var (
		mu  sync.Mutex
		ids = make(map[uuid.UUID]struct{}, n)
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			user, err := repo.Create(gctx, domain.CreateUserRequest{
				Name:  fmt.Sprintf("mysql-user-%d", i),
				Email: fmt.Sprintf("mysql-user-%d@example.com", i),
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
}
