package service

import (
	"context"

	"directorio/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileIndexer defines the interface for keeping the external search index
// in sync with professional profiles. Implementations talk to a remote vector
// store; the use case layer only sees file ids and errors.
type ProfileIndexer interface {
	// SyncProfile replaces the indexed document for a profile with the given
	// one and returns the id of the freshly indexed file. The previous
	// document, if any, is removed first. SyncProfile blocks until the new
	// document is fully processed by the index or ctx is cancelled.
	SyncProfile(ctx context.Context, profileID uuid.UUID, doc *entity.ProfileDocument) (string, error)

	// RemoveProfile deletes the indexed document for a profile. It reports
	// whether a document was found and removed.
	RemoveProfile(ctx context.Context, profileID uuid.UUID) (bool, error)
}
