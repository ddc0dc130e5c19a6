package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lorrc/users-api/internal/core/domain"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
	"github.com/lorrc/users-api/internal/core/ports"
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id    CHAR(36) PRIMARY KEY,
		name  VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL
	)
`

// UserRepository is the PostgreSQL adapter for ports.UserRepository.
// Identifiers are stored in their canonical string form.
type UserRepository struct {
	db DBTX
}

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.SchemaInitializer = (*UserRepository)(nil)
)

// NewUserRepository creates a repository on top of a shared pool (or any
// DBTX). The handle must be safe for concurrent use.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createUsersTable); err != nil {
		return apperrors.DatabaseError("failed to create users table", err)
	}
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	const query = `SELECT id, name, email FROM users`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to list users", err)
	}

	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT id, name, email FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	const query = `INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`

	user := domain.NewUser(req)
	if _, err := r.db.Exec(ctx, query, user.ID.String(), user.Name, user.Email); err != nil {
		return nil, apperrors.DatabaseError("failed to insert user", err)
	}
	return user, nil
}

// Update reads the current row, merges req over it and writes it back. The
// read and the write are not atomic; a concurrent writer may be overwritten.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateUserRequest) (*domain.User, error) {
	const query = `UPDATE users SET name = $2, email = $3 WHERE id = $1`

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := req.ApplyTo(*current)
	tag, err := r.db.Exec(ctx, query, id.String(), merged.Name, merged.Email)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to update user", err)
	}
	// deleted between the read and the write
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(id)
	}

	return &merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id.String()); err != nil {
		return apperrors.DatabaseError("failed to delete user", err)
	}
	return nil
}

// scanUser reads one row. pgx.ErrNoRows is returned unwrapped so callers can
// turn it into NotFound; every other failure is a DatabaseError.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		rawID string
		user  domain.User
	)
	if err := row.Scan(&rawID, &user.Name, &user.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.DatabaseError("failed to read user", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.DatabaseError("stored user id is malformed", err)
	}
	user.ID = id

	return &user, nil
}
