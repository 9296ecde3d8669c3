// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "directorio/internal/delivery/context"
	"directorio/internal/domain/entity"
	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/domain/repository"
	"directorio/internal/domain/service"
	"directorio/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	professionalRepo repository.ProfessionalRepository
	indexer          service.ProfileIndexer
	qrService        service.QRCodeService
	logger           *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	ProfessionalRepo repository.ProfessionalRepository
	Indexer          service.ProfileIndexer
	QRService        service.QRCodeService
	Logger           *slog.Logger
}

// NewProfileService is the constructor for profileService. It receives all dependencies as interfaces.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		professionalRepo: params.ProfessionalRepo,
		indexer:          params.Indexer,
		qrService:        params.QRService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpsertProfile creates or updates the caller's profile and synchronously
// replaces its search index document. The row write and the index sync are one
// logical operation: a failed sync rolls the row write back, so a profile the
// index never ingested is not retrievable afterwards.
func (srv *profileService) UpsertProfile(ctx context.Context, userID uuid.UUID, input *usecase.ProfessionalInput) (*usecase.ProfileView, error) {
	srv.log(ctx).Info("Starting profile upsert", slog.Any("userID", userID))

	var profile *entity.ProfessionalProfile
	var created bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		owner, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load profile owner")
		}

		profile, created, err = upsertAndSyncProfile(ctx, repoFactory, srv.indexer, owner, input)

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute profile upsert transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile upsert completed", slog.Any("userID", userID), slog.Any("profileID", profile.ID), slog.Bool("created", created))

	return &usecase.ProfileView{Profile: profile, Created: created}, nil
}

// upsertAndSyncProfile runs the full upsert workflow inside the caller's
// transaction: normalize, create or update the row, replace the index
// document, then store the returned file reference. Any error leaves the
// transaction to roll back, so the row and the index stay consistent.
//
// Registration reuses this helper inside its own transaction, which is what
// makes "no user without its requested profile" hold.
func upsertAndSyncProfile(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	indexer service.ProfileIndexer,
	owner *entity.User,
	input *usecase.ProfessionalInput,
) (*entity.ProfessionalProfile, bool, error) {
	if input == nil || input.FullName == "" || input.Occupation == "" {
		return nil, false, domainerrors.ErrValidationFailed.WrapMessage("professional name and occupation are required")
	}

	profRepo := repoFactory.ProfessionalRepo()

	// Contact email falls back to the owner's login email.
	contactEmail := input.Email
	if contactEmail == "" {
		contactEmail = owner.Email
	}

	profile, err := profRepo.FindByUserID(ctx, owner.ID)
	created := false
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		profile = &entity.ProfessionalProfile{
			UserID:       owner.ID,
			FullName:     input.FullName,
			Occupation:   input.Occupation,
			City:         input.City,
			Neighborhood: input.Neighborhood,
			Phone:        input.Phone,
			Email:        contactEmail,
			Description:  input.Description,
		}
		profile.Normalize()

		// The row is flushed here so the fresh id is available for the index
		// document, but the transaction stays open until the sync succeeds.
		if err := profRepo.Create(ctx, profile); err != nil {
			return nil, false, errors.Wrap(err, "failed to create professional profile")
		}
		created = true
	case err != nil:
		return nil, false, errors.Wrap(err, "failed to find professional profile")
	default:
		profile.FullName = input.FullName
		profile.Occupation = input.Occupation
		profile.City = input.City
		profile.Neighborhood = input.Neighborhood
		profile.Phone = input.Phone
		profile.Email = contactEmail
		profile.Description = input.Description
		profile.Normalize()

		if err := profRepo.Update(ctx, profile); err != nil {
			return nil, false, errors.Wrap(err, "failed to update professional profile")
		}
	}

	doc := entity.BuildProfileDocument(profile)

	fileID, err := indexer.SyncProfile(ctx, profile.ID, doc)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to sync profile to search index")
	}

	// Only a successful sync may set the index reference.
	profile.VectorStoreFileID = &fileID
	if err := profRepo.Update(ctx, profile); err != nil {
		return nil, false, errors.Wrap(err, "failed to store index file reference")
	}

	return profile, created, nil
}

// GetProfile returns the caller's professional profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	// Single query operation - use direct repository instance
	profile, err := srv.professionalRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("professional profile not found")
		}

		return nil, errors.Wrap(err, "failed to get professional profile")
	}

	return profile, nil
}

// RemoveFromIndex withdraws the caller's profile from search and clears the
// stored index reference. The profile row itself is kept.
func (srv *profileService) RemoveFromIndex(ctx context.Context, userID uuid.UUID) (bool, error) {
	srv.log(ctx).Info("Removing profile from search index", slog.Any("userID", userID))

	var removed bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profRepo := repoFactory.ProfessionalRepo()

		profile, err := profRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("professional profile not found")
			}

			return errors.Wrap(err, "failed to find professional profile")
		}

		removed, err = srv.indexer.RemoveProfile(ctx, profile.ID)
		if err != nil {
			return errors.Wrap(err, "failed to remove profile from search index")
		}

		if profile.VectorStoreFileID != nil {
			profile.VectorStoreFileID = nil
			if err := profRepo.Update(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to clear index file reference")
			}
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to remove profile from index", slog.Any("userID", userID), slog.Any("error", err))

		return false, err
	}

	return removed, nil
}

// ContactQR renders a QR code pointing at the caller's public contact card.
func (srv *profileService) ContactQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	profile, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateContactQR(profile.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate contact QR code")
	}

	return png, nil
}
