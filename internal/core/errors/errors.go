package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a UserError. The set is closed: every failure leaving the
// service or repository layers carries exactly one of these kinds.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindDatabase
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a UserError's kind.
var (
	ErrNotFound   = errors.New("user not found")
	ErrDatabase   = errors.New("database error")
	ErrValidation = errors.New("validation error")
)

// UserError is the domain error returned by the user service and by every
// repository implementation.
type UserError struct {
	Kind   Kind
	ID     uuid.UUID // set for KindNotFound
	Detail string    // human-readable, safe to expose
	Err    error     // underlying cause, logged but never exposed
}

// NotFound reports that no user exists with the given id.
func NotFound(id uuid.UUID) *UserError {
	return &UserError{Kind: KindNotFound, ID: id}
}

// DatabaseError reports a storage failure. detail describes the failed
// operation; cause is the backend error.
func DatabaseError(detail string, cause error) *UserError {
	return &UserError{Kind: KindDatabase, Detail: detail, Err: cause}
}

// ValidationError reports a request that violates a business rule.
func ValidationError(detail string) *UserError {
	return &UserError{Kind: KindValidation, Detail: detail}
}

func (e *UserError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s: %s", ErrNotFound, e.ID)
	case KindDatabase:
		return fmt.Sprintf("%s: %s", ErrDatabase, e.Detail)
	case KindValidation:
		return fmt.Sprintf("%s: %s", ErrValidation, e.Detail)
	default:
		return e.Detail
	}
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels, so errors.Is(err, ErrNotFound) works on any
// wrapped UserError.
func (e *UserError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDatabase:
		return e.Kind == KindDatabase
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// As extracts a UserError from err's chain.
func As(err error) (*UserError, bool) {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr, true
	}
	return nil, false
}
