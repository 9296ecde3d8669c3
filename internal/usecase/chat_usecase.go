package usecase

import "context"

// ChatSessionInput defines the data required to start an assistant session.
type ChatSessionInput struct {
	WorkflowID string
	UserID     string
}

// ChatSessionOutput returns the client secret the frontend uses to connect.
type ChatSessionOutput struct {
	ClientSecret string
}

// ChatUsecase defines the interface for assistant session operations.
type ChatUsecase interface {
	CreateSession(ctx context.Context, input *ChatSessionInput) (*ChatSessionOutput, error)
}
