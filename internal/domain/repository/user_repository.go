// Package repository defines the persistence contracts of the domain layer.
package repository

import (
	"context"

	"directorio/internal/domain/entity"
	"directorio/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors returned by repository implementations. Use cases match on
// these instead of driver-specific errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("professional profile not found")
)

// UserRepository defines persistence operations for the User entity.
type UserRepository interface {
	// FindByID retrieves a user by their unique ID, preloading the
	// professional profile when present.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. The generated ID and timestamps are written
	// back onto the entity before the surrounding transaction commits.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user record.
	Update(ctx context.Context, user *entity.User) error
}
