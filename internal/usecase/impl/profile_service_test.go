package impl

import (
	"context"
	"testing"

	"directorio/internal/domain/entity"
	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service usecase.ProfileUsecase
	store   *fakeStore
	indexer *fakeIndexer
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	t.Helper()

	store := newFakeStore()
	indexer := newFakeIndexer()

	service := NewProfileService(ProfileServiceParams{
		TxManager:        &fakeTxManager{store: store},
		UserRepo:         &fakeUserRepo{store: store},
		ProfessionalRepo: &fakeProfessionalRepo{store: store},
		Indexer:          indexer,
		QRService:        stubQRService{},
		Logger:           newDiscardLogger(),
	})

	return profileServiceFixtures{
		service: service,
		store:   store,
		indexer: indexer,
	}
}

func seedUser(t *testing.T, store *fakeStore, email string) *entity.User {
	t.Helper()

	user := &entity.User{Email: email, PasswordHash: "hashed:secret1"}
	repo := &fakeUserRepo{store: store}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func plumberInput() *usecase.ProfessionalInput {
	return &usecase.ProfessionalInput{
		FullName:   "Ana Pérez",
		Occupation: "  Plomera ",
		City:       "  Lima ",
		Phone:      "099123456",
	}
}

func TestProfileService_UpsertProfile_CreatesAndIndexes(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	view, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.NoError(t, err)

	assert.True(t, view.Created)
	assert.NotEqual(t, uuid.Nil, view.Profile.ID)
	require.NotNil(t, view.Profile.NormalizedOccupation)
	assert.Equal(t, "plomera", *view.Profile.NormalizedOccupation)
	require.NotNil(t, view.Profile.NormalizedCity)
	assert.Equal(t, "lima", *view.Profile.NormalizedCity)

	// Index reference is set only after the sync succeeded.
	require.NotNil(t, view.Profile.VectorStoreFileID)
	assert.Equal(t, fx.indexer.fileIDs[view.Profile.ID], *view.Profile.VectorStoreFileID)

	// Contact email falls back to the owner's login email.
	assert.Equal(t, "ana@example.com", view.Profile.Email)

	doc := fx.indexer.documents[view.Profile.ID]
	require.NotNil(t, doc)
	assert.Equal(t, user.ID.String(), doc.UserID)
	assert.Equal(t, view.Profile.ID.String(), doc.ProfileID)
	assert.Equal(t, entity.DocumentSource, doc.Source)

	// The row is committed.
	stored, err := fx.service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.VectorStoreFileID)
}

func TestProfileService_UpsertProfile_IsIdempotent(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	first, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.NoError(t, err)

	input := plumberInput()
	input.City = "  Montevideo "
	second, err := fx.service.UpsertProfile(ctx, user.ID, input)
	require.NoError(t, err)

	// Same row, not a duplicate, with the derived field recomputed.
	assert.False(t, second.Created)
	assert.Equal(t, first.Profile.ID, second.Profile.ID)
	require.NotNil(t, second.Profile.NormalizedCity)
	assert.Equal(t, "montevideo", *second.Profile.NormalizedCity)
	assert.Len(t, fx.store.profiles, 1)

	// The index document was replaced, not duplicated.
	assert.Len(t, fx.indexer.documents, 1)
	assert.NotEqual(t, *first.Profile.VectorStoreFileID, *second.Profile.VectorStoreFileID)
}

func TestProfileService_UpsertProfile_SyncFailureRollsBackCreate(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	fx.indexer.syncErr = domainerrors.NewIndexSyncError("timeout", "")

	_, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.Error(t, err)

	var syncErr *domainerrors.IndexSyncError
	assert.ErrorAs(t, err, &syncErr)

	// The created row must not survive the failed sync.
	_, err = fx.service.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileService_UpsertProfile_SyncFailureKeepsPreviousVersion(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	first, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.NoError(t, err)

	fx.indexer.syncErr = domainerrors.NewIndexSyncError("error", "rejected")

	input := plumberInput()
	input.City = "Montevideo"
	_, err = fx.service.UpsertProfile(ctx, user.ID, input)
	require.Error(t, err)

	// The previously committed row is untouched.
	stored, err := fx.service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Lima ", stored.City)
	require.NotNil(t, stored.VectorStoreFileID)
	assert.Equal(t, *first.Profile.VectorStoreFileID, *stored.VectorStoreFileID)
}

func TestProfileService_UpsertProfile_ValidatesRequiredFields(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	input := plumberInput()
	input.Occupation = ""

	_, err := fx.service.UpsertProfile(ctx, user.ID, input)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Zero(t, fx.indexer.syncCalls)
}

func TestProfileService_UpsertProfile_UnknownOwner(t *testing.T) {
	fx := createTestProfileService(t)

	_, err := fx.service.UpsertProfile(context.Background(), uuid.New(), plumberInput())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	_, err := fx.service.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileService_RemoveFromIndex(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	view, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.NoError(t, err)

	removed, err := fx.service.RemoveFromIndex(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, fx.indexer.documents)

	// The row survives but the index reference is cleared.
	stored, err := fx.service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.VectorStoreFileID)
	assert.Equal(t, view.Profile.ID, stored.ID)
}

func TestProfileService_ContactQR(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := seedUser(t, fx.store, "ana@example.com")

	view, err := fx.service.UpsertProfile(ctx, user.ID, plumberInput())
	require.NoError(t, err)

	png, err := fx.service.ContactQR(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("qr:"+view.Profile.ID.String()), png)
}
