package handler

import (
	"log/slog"
	"net/http"

	"directorio/internal/delivery/http/response"
	"directorio/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionRequest is the wire format for creating an assistant session.
type SessionRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required"`
	UserID     string `json:"user_id"     validate:"required"`
}

// SessionResponse carries the short-lived secret the frontend uses to connect.
type SessionResponse struct {
	ClientSecret string `json:"client_secret"`
}

// ChatKitHandler holds dependencies for assistant session handlers.
type ChatKitHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatKitHandler is the constructor for ChatKitHandler, injected by Fx.
func NewChatKitHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatKitHandler {
	return &ChatKitHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateSession mints a new assistant session for the given workflow and user.
func (h *ChatKitHandler) CreateSession(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateSession(c.Request().Context(), &usecase.ChatSessionInput{
		WorkflowID: req.WorkflowID,
		UserID:     req.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &SessionResponse{ClientSecret: output.ClientSecret}, "Session created successfully")
}
