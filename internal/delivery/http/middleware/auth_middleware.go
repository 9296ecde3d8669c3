package middleware

import (
	"net/http"
	"strings"

	"directorio/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUserID         = "userID"
	KeyUserEmail      = "userEmail"
	KeyIsProfessional = "isProfessional"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		// Set user info on the context for handlers to use
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserEmail, claims.Email)
		c.Set(KeyIsProfessional, claims.IsProfessional)

		return next(c)
	}
}

// RequireProfessional checks that the authenticated user registered as a
// professional. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireProfessional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isProfessional, ok := c.Get(KeyIsProfessional).(bool)
		if !ok || !isProfessional {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: professional account required"})
		}

		return next(c)
	}
}
