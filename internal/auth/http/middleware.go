package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ratt/validator/internal/errors"
	"github.com/ratt/validator/internal/httputil"
)

// AuthenticationMiddleware requires a bearer token in the Authorization
// header. Terminals in the field identify themselves with a shared
// provisioning token; the middleware checks presence and shape, stores the
// token in the request context for rate limiting, and rejects requests
// without one.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
//
// Error handling:
//   - Missing Authorization header -> 401 Unauthorized
//   - Malformed Authorization header -> 401 Unauthorized
//   - Empty bearer token -> 401 Unauthorized
func AuthenticationMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithToken(c.Request.Context(), token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
