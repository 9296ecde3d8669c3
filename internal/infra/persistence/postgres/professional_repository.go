package postgres

import (
	"context"

	"directorio/internal/domain/entity"
	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/domain/repository"
	"directorio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// professionalRepository implements the domain.ProfessionalRepository interface using GORM.
type professionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository is the constructor for professionalRepository.
func NewProfessionalRepository(db *gorm.DB) repository.ProfessionalRepository {
	return &professionalRepository{db: db}
}

// FindByUserID retrieves the profile owned by a user.
func (repo *professionalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profileM model.ProfessionalProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find professional profile by user id")
	}

	return toProfessionalDomain(&profileM), nil
}

// Create persists a new professional profile.
func (repo *professionalRepository) Create(ctx context.Context, profile *entity.ProfessionalProfile) error {
	profileM := fromProfessionalDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("user already has a professional profile")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required profile information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("profile owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create professional profile")
	}

	// Update the profile entity with the generated ID and timestamps
	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Update modifies an existing professional profile in place.
func (repo *professionalRepository) Update(ctx context.Context, profile *entity.ProfessionalProfile) error {
	profileM := fromProfessionalDomain(profile)

	if err := repo.db.WithContext(ctx).Save(profileM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required profile information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update professional profile")
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// toProfessionalDomain converts a GORM ProfessionalProfileModel to a domain entity.
func toProfessionalDomain(data *model.ProfessionalProfileModel) *entity.ProfessionalProfile {
	if data == nil {
		return nil
	}

	return &entity.ProfessionalProfile{
		ID:                   data.ID,
		UserID:               data.UserID,
		FullName:             data.FullName,
		Occupation:           data.Occupation,
		City:                 data.City,
		Neighborhood:         data.Neighborhood,
		Phone:                data.Phone,
		Email:                data.Email,
		Description:          data.Description,
		NormalizedOccupation: data.NormalizedOccupation,
		NormalizedCity:       data.NormalizedCity,
		VectorStoreFileID:    data.VectorStoreFileID,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// fromProfessionalDomain converts a domain entity to a GORM ProfessionalProfileModel.
func fromProfessionalDomain(data *entity.ProfessionalProfile) *model.ProfessionalProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfessionalProfileModel{
		ID:                   data.ID,
		UserID:               data.UserID,
		FullName:             data.FullName,
		Occupation:           data.Occupation,
		City:                 data.City,
		Neighborhood:         data.Neighborhood,
		Phone:                data.Phone,
		Email:                data.Email,
		Description:          data.Description,
		NormalizedOccupation: data.NormalizedOccupation,
		NormalizedCity:       data.NormalizedCity,
		VectorStoreFileID:    data.VectorStoreFileID,
		CreatedAt:            data.CreatedAt,
	}
}
