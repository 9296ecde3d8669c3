package repository

import (
	"context"

	"directorio/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfessionalRepository defines persistence operations for the
// ProfessionalProfile entity.
type ProfessionalRepository interface {
	// FindByUserID retrieves the profile owned by a user.
	// Returns ErrProfileNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProfessionalProfile, error)

	// Create persists a new profile. The generated ID and timestamps are
	// visible on the entity immediately, before the surrounding transaction
	// commits.
	Create(ctx context.Context, profile *entity.ProfessionalProfile) error

	// Update modifies an existing profile record in place.
	Update(ctx context.Context, profile *entity.ProfessionalProfile) error
}
