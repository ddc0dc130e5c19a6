package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

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

// userRecord is the persistence shape of a user.
type userRecord struct {
	ID    string `gorm:"primaryKey;size:36"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null"`
}

func (userRecord) TableName() string {
	return "users"
}

func fromDomain(u *domain.User) *userRecord {
	return &userRecord{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

func (rec *userRecord) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, apperrors.DatabaseError("stored user id is malformed", err)
	}
	return &domain.User{ID: id, Name: rec.Name, Email: rec.Email}, nil
}

// UserRepository is the MySQL adapter for ports.UserRepository, built on gorm.
type UserRepository struct {
	db *gorm.DB
}

var (
	_ ports.UserRepository    = (*UserRepository)(nil)
	_ ports.SchemaInitializer = (*UserRepository)(nil)
)

// NewUserRepository creates a repository on top of a shared *gorm.DB.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(createUsersTable).Error; err != nil {
		return apperrors.DatabaseError("failed to create users table", err)
	}
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, apperrors.DatabaseError("failed to list users", err)
	}

	users := make([]*domain.User, 0, len(records))
	for i := range records {
		user, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var rec userRecord
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(id)
		}
		return nil, apperrors.DatabaseError("failed to get user", result.Error)
	}
	return rec.toDomain()
}

func (r *UserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	user := domain.NewUser(req)
	if err := r.db.WithContext(ctx).Create(fromDomain(user)).Error; err != nil {
		return nil, apperrors.DatabaseError("failed to insert user", err)
	}
	return user, nil
}

// Update reads the current row, merges req over it and writes it back. The
// read and the write are not atomic; a concurrent writer may be overwritten.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateUserRequest) (*domain.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := req.ApplyTo(*current)
	db := r.db.WithContext(ctx)
	result := db.Model(&userRecord{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{
			"name":  merged.Name,
			"email": merged.Email,
		})
	if result.Error != nil {
		return nil, apperrors.DatabaseError("failed to update user", result.Error)
	}

	// MySQL reports changed rows, not matched rows, so an unchanged row
	// also yields zero here.
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&userRecord{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
			return nil, apperrors.DatabaseError("failed to update user", err)
		}
		if count == 0 {
			return nil, apperrors.NotFound(id)
		}
	}

	return &merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&userRecord{}).Error; err != nil {
		return apperrors.DatabaseError("failed to delete user", err)
	}
	return nil
}
