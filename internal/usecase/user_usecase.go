// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"directorio/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user. When the
// caller opts in as a professional, the Professional block is required and the
// profile is created and indexed as part of the same registration.
type RegisterInput struct {
	Email          string
	Password       string
	FullName       string
	Phone          string
	City           string
	IsProfessional bool
	Professional   *ProfessionalInput
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user and, when requested, the
// indexed professional profile.
type RegisterOutput struct {
	User         *entity.User
	Professional *entity.ProfessionalProfile
}

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	User        *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
