package handlers

import (
	"real-balance/internal/models"
	"real-balance/pkg/apperrors"
	"real-balance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = apperrors.New(apperrors.CodeValidation, "invalid request body")

func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "authentication required")
	}
	return user, nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.ForField(apperrors.CodeValidation, "id", "id must be a positive integer")
	}
	return int64(id), nil
}
