package middleware

import (
	"context"
	"strings"

	"real-balance/internal/models"
	"real-balance/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userKey = "user"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects the request with 401 unless the Authorization header
// carries a token that resolves to an existing user, which is then stored in
// the request locals.
func AuthMiddleware(authenticator Authenticator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return unauthorized(c, "authorization token required")
		}

		user, err := authenticator.Authenticate(c.Context(), token)
		if err != nil {
			if apperrors.CodeOf(err) != apperrors.CodeUnauthenticated {
				return err
			}
			logger.Warn("Invalid token", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userKey).(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = header[7:]
	}
	return strings.TrimSpace(header)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  apperrors.CodeUnauthenticated,
	})
}
