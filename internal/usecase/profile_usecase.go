package usecase

import (
	"context"

	"directorio/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfessionalInput defines the human-entered fields of a professional
// profile. Derived fields are recomputed on every write and never accepted
// from the caller.
type ProfessionalInput struct {
	FullName     string
	Occupation   string
	City         string
	Neighborhood string
	Phone        string
	Email        string
	Description  string
}

// ProfileView is the result of an upsert: the persisted profile plus whether
// this call created it.
type ProfileView struct {
	Profile *entity.ProfessionalProfile
	Created bool
}

// ProfileUsecase defines the interface for professional profile operations.
type ProfileUsecase interface {
	// UpsertProfile creates or updates the caller's profile and synchronously
	// replaces its document in the search index. The row write and the index
	// sync succeed or fail together.
	UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfessionalInput) (*ProfileView, error)

	// GetProfile returns the caller's profile, or ErrNotFound when the user
	// has none.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.ProfessionalProfile, error)

	// RemoveFromIndex withdraws the caller's profile from search. The profile
	// row survives; only its index document and stored reference are cleared.
	RemoveFromIndex(ctx context.Context, userID uuid.UUID) (bool, error)

	// ContactQR renders a QR code pointing at the caller's public contact card.
	ContactQR(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
