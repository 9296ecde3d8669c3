package impl

import (
	"context"
	"testing"

	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service usecase.UserUsecase
	store   *fakeStore
	indexer *fakeIndexer
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	store := newFakeStore()
	indexer := newFakeIndexer()

	service := NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{store: store},
		UserRepo:     &fakeUserRepo{store: store},
		Hasher:       stubHasher{},
		TokenService: &stubTokenService{},
		Indexer:      indexer,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service: service,
		store:   store,
		indexer: indexer,
	}
}

func TestUserService_Register_Consumer(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "ana@example.com",
		Password: "secret1",
		FullName: "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.False(t, out.User.IsProfessional)
	assert.Nil(t, out.Professional)
	assert.Equal(t, "hashed:secret1", out.User.PasswordHash)
	assert.Zero(t, fx.indexer.syncCalls)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, &usecase.RegisterInput{Email: "ana@example.com", Password: "other22"})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	assert.Len(t, fx.store.users, 1)
}

func TestUserService_Register_Professional(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:          "a@x.com",
		Password:       "secret1",
		IsProfessional: true,
		Professional: &usecase.ProfessionalInput{
			FullName:   "Ana",
			Occupation: "Plomera",
			City:       "  Lima ",
		},
	})
	require.NoError(t, err)

	assert.True(t, out.User.IsProfessional)
	require.NotNil(t, out.Professional)
	assert.Equal(t, out.User.ID, out.Professional.UserID)
	require.NotNil(t, out.Professional.NormalizedOccupation)
	assert.Equal(t, "plomera", *out.Professional.NormalizedOccupation)
	require.NotNil(t, out.Professional.NormalizedCity)
	assert.Equal(t, "lima", *out.Professional.NormalizedCity)
	assert.NotNil(t, out.Professional.VectorStoreFileID)
}

func TestUserService_Register_ProfessionalRequiresData(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:          "ana@example.com",
		Password:       "secret1",
		IsProfessional: true,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, fx.store.users)
}

func TestUserService_Register_SyncFailureLeavesNoUser(t *testing.T) {
	fx := createTestUserService(t)
	fx.indexer.syncErr = domainerrors.NewIndexSyncError("timeout", "")

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:          "ana@example.com",
		Password:       "secret1",
		IsProfessional: true,
		Professional: &usecase.ProfessionalInput{
			FullName:   "Ana",
			Occupation: "Plomera",
		},
	})
	require.Error(t, err)

	// The whole registration rolls back: no user, no profile.
	assert.Empty(t, fx.store.users)
	assert.Empty(t, fx.store.profiles)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "token-"+registered.User.ID.String(), out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, registered.User.ID, out.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ana@example.com", Password: "wrong11"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}
