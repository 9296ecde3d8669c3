// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"directorio/internal/delivery/http/middleware"
	"directorio/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	ChatKitHandler *handler.ChatKitHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	chatKitHandler *handler.ChatKitHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		chatKitHandler: params.ChatKitHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Assistant session routes
	chatGroup := api.Group("/chatkit")
	{
		chatGroup.POST("/session", r.chatKitHandler.CreateSession)
	}

	// Profile routes that require authentication
	profileGroup := api.Group("/profiles")
	profileGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		profileGroup.GET("/me", r.profileHandler.GetMyProfile)
		profileGroup.PUT("/me", r.profileHandler.UpsertMyProfile)
		profileGroup.DELETE("/me/index", r.profileHandler.RemoveFromIndex)
		profileGroup.GET("/me/qr", r.profileHandler.ContactQR)
	}
}
