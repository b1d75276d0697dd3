package api

import (
	"errors"

	"real-balance/internal/dto"
	"real-balance/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorHandler renders domain errors as {"error", "code", "field"}. Internal
// faults are logged with their cause and answered with a generic message.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.From(err); ok {
			if appErr.Code == apperrors.CodeInternal {
				return internalError(c, logger, err)
			}
			return c.Status(appErr.Code.HTTPStatus()).JSON(dto.ErrorResponse{
				Error: appErr.Message,
				Code:  string(appErr.Code),
				Field: appErr.Param,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: fiberErr.Message,
				Code:  string(codeForStatus(fiberErr.Code)),
			})
		}

		return internalError(c, logger, err)
	}
}

func internalError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	logger.Error("Request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "internal server error",
		Code:  string(apperrors.CodeInternal),
	})
}

func codeForStatus(status int) apperrors.Code {
	switch status {
	case fiber.StatusUnauthorized:
		return apperrors.CodeUnauthenticated
	case fiber.StatusNotFound:
		return apperrors.CodeNotFound
	default:
		return apperrors.CodeValidation
	}
}
