package impl

import (
	"context"
	"log/slog"

	deliverycontext "directorio/internal/delivery/context"
	"directorio/internal/domain/service"
	"directorio/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	sessions service.ChatSessionService
	logger   *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	Sessions service.ChatSessionService
	Logger   *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		sessions: params.Sessions,
		logger:   params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSession starts an assistant session for the given workflow and user.
func (srv *chatService) CreateSession(ctx context.Context, input *usecase.ChatSessionInput) (*usecase.ChatSessionOutput, error) {
	srv.log(ctx).Debug("Creating assistant session", slog.String("workflowID", input.WorkflowID))

	secret, err := srv.sessions.CreateSession(ctx, input.WorkflowID, input.UserID)
	if err != nil {
		srv.log(ctx).Error("Failed to create assistant session", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create assistant session")
	}

	return &usecase.ChatSessionOutput{ClientSecret: secret}, nil
}
