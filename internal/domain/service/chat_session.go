package service

import "context"

// ChatSessionService defines the interface for minting client sessions against
// the conversational assistant backed by the search index.
type ChatSessionService interface {
	// CreateSession starts a session for the given workflow and end user and
	// returns the client secret the frontend uses to connect.
	CreateSession(ctx context.Context, workflowID, userID string) (string, error)
}
