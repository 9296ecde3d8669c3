// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"directorio/internal/delivery/http/response"
	"directorio/internal/domain/entity"
	"directorio/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the wire format for the registration endpoint.
type RegisterRequest struct {
	Email          string               `json:"email"           validate:"required,email"`
	Password       string               `json:"password"        validate:"required,min=6"`
	FullName       string               `json:"full_name"`
	Phone          string               `json:"phone"`
	City           string               `json:"city"`
	IsProfessional bool                 `json:"is_professional"`
	Professional   *ProfessionalRequest `json:"professional"    validate:"omitempty"`
}

// LoginRequest is the wire format for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user account. The password hash never
// leaves the service.
type UserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	IsProfessional bool   `json:"is_professional"`
}

// RegisterResponse bundles the created account with the indexed professional
// profile when the caller registered as one.
type RegisterResponse struct {
	User         *UserResponse    `json:"user"`
	Professional *ProfileResponse `json:"professional,omitempty"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		FullName:       user.FullName,
		Phone:          user.Phone,
		City:           user.City,
		IsProfessional: user.IsProfessional,
	}
}

// AuthHandler holds dependencies for registration and login handlers.
type AuthHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Phone:          req.Phone,
		City:           req.City,
		IsProfessional: req.IsProfessional,
		Professional:   req.Professional.toInput(),
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := &RegisterResponse{User: toUserResponse(output.User)}
	if output.Professional != nil {
		resp.Professional = toProfileResponse(output.Professional)
	}

	return response.Success(c, http.StatusCreated, resp, "User registered successfully")
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := &LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		User:        toUserResponse(output.User),
	}

	return response.Success(c, http.StatusOK, resp, "Login successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
