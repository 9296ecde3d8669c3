package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"directorio/internal/domain/entity"
	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/domain/repository"
	"directorio/internal/domain/service"
	"directorio/internal/errors"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory record store shared by the fake repositories. The
// fake transaction manager snapshots it before each Execute and restores the
// snapshot when the callback fails, mirroring commit/rollback behavior.
type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	profiles map[uuid.UUID]*entity.ProfessionalProfile // keyed by owner user id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uuid.UUID]*entity.User{},
		profiles: map[uuid.UUID]*entity.ProfessionalProfile{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	clone := newFakeStore()
	for id, u := range s.users {
		copied := *u
		clone.users[id] = &copied
	}
	for id, p := range s.profiles {
		copied := *p
		clone.profiles[id] = &copied
	}

	return clone
}

func (s *fakeStore) restore(from *fakeStore) {
	s.users = from.users
	s.profiles = from.profiles
}

// fakeTxManager implements repository.TransactionManager over a fakeStore.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snapshot := m.store.snapshot()

	if err := fn(&fakeRepoFactory{store: m.store}); err != nil {
		m.store.restore(snapshot)

		return err
	}

	return nil
}

type fakeRepoFactory struct {
	store *fakeStore
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeRepoFactory) ProfessionalRepo() repository.ProfessionalRepository {
	return &fakeProfessionalRepo{store: f.store}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	copied.ProfessionalProfile = nil
	if profile, ok := r.store.profiles[id]; ok {
		profileCopy := *profile
		copied.ProfessionalProfile = &profileCopy
	}

	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for id, user := range r.store.users {
		if user.Email == email {
			return r.FindByID(ctx, id)
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domainerrors.ErrDuplicateEmail
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	copied.ProfessionalProfile = nil
	r.store.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	copied := *user
	copied.ProfessionalProfile = nil
	r.store.users[user.ID] = &copied

	return nil
}

type fakeProfessionalRepo struct {
	store *fakeStore
}

func (r *fakeProfessionalRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	profile, ok := r.store.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copied := *profile

	return &copied, nil
}

func (r *fakeProfessionalRepo) Create(_ context.Context, profile *entity.ProfessionalProfile) error {
	if _, ok := r.store.profiles[profile.UserID]; ok {
		return domainerrors.ErrConflict
	}

	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	copied := *profile
	r.store.profiles[profile.UserID] = &copied

	return nil
}

func (r *fakeProfessionalRepo) Update(_ context.Context, profile *entity.ProfessionalProfile) error {
	if _, ok := r.store.profiles[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}

	profile.UpdatedAt = time.Now()
	copied := *profile
	r.store.profiles[profile.UserID] = &copied

	return nil
}

// fakeIndexer implements service.ProfileIndexer and records every sync.
type fakeIndexer struct {
	syncErr   error
	nextID    int
	syncCalls int

	// indexed documents by profile id, replaced on every successful sync.
	documents map[uuid.UUID]*entity.ProfileDocument
	fileIDs   map[uuid.UUID]string
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{
		documents: map[uuid.UUID]*entity.ProfileDocument{},
		fileIDs:   map[uuid.UUID]string{},
	}
}

func (i *fakeIndexer) SyncProfile(_ context.Context, profileID uuid.UUID, doc *entity.ProfileDocument) (string, error) {
	i.syncCalls++
	if i.syncErr != nil {
		return "", i.syncErr
	}

	i.nextID++
	fileID := fmt.Sprintf("file_%d", i.nextID)
	i.documents[profileID] = doc
	i.fileIDs[profileID] = fileID

	return fileID, nil
}

func (i *fakeIndexer) RemoveProfile(_ context.Context, profileID uuid.UUID) (bool, error) {
	_, ok := i.documents[profileID]
	delete(i.documents, profileID)
	delete(i.fileIDs, profileID)

	return ok, nil
}

// stubHasher implements service.PasswordHasher without real bcrypt cost.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubTokenService implements service.TokenService with predictable tokens.
type stubTokenService struct {
	generateErr error
}

func (s *stubTokenService) GenerateToken(userID uuid.UUID, _ string, _ bool) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}

	return "token-" + userID.String(), nil
}

func (s *stubTokenService) ValidateToken(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

// stubQRService implements service.QRCodeService.
type stubQRService struct{}

func (stubQRService) GenerateContactQR(profileID string) ([]byte, error) {
	return []byte("qr:" + profileID), nil
}
