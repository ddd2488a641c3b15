package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/delivery/http/response"
	"frishta/internal/infra/auth"
	"frishta/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves opaque bearer tokens into sessions.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessionUC usecase.SessionUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Authenticate hashes the presented token, resolves the session and attaches
// the identity to the request. The token itself is never logged or stored.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return response.Unauthorized(c, "MISSING_TOKEN", "Missing token")
		}
		token := header[len(bearerPrefix):]
		if token == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Missing token")
		}

		tokenHash := auth.HashSessionToken(token)
		session, err := m.sessionUC.Resolve(c.Request().Context(), tokenHash)
		if err != nil {
			return response.Unauthorized(c, "INVALID_SESSION", "Invalid session")
		}

		deliverycontext.SetIdentity(c, session.UserID, tokenHash)

		return next(c)
	}
}
