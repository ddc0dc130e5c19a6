package domain

import (
	"github.com/google/uuid"
)

// User is the persisted user record. ID is assigned by the storage adapter
// on create and never changes afterwards.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// CreateUserRequest holds the fields required to create a user.
type CreateUserRequest struct {
	Name  string
	Email string
}

// UpdateUserRequest holds a partial update. A nil field leaves the stored
// value unchanged.
type UpdateUserRequest struct {
	Name  *string
	Email *string
}

// ApplyTo merges the present fields of the request over current and returns
// the result. current is not modified.
func (r UpdateUserRequest) ApplyTo(current User) User {
	merged := current
	if r.Name != nil {
		merged.Name = *r.Name
	}
	if r.Email != nil {
		merged.Email = *r.Email
	}
	return merged
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil
}

// NewUser builds a user record with a freshly generated identifier.
func NewUser(req CreateUserRequest) *User {
	return &User{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
	}
}
