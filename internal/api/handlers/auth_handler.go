package handlers

import (
	"real-balance/internal/dto"
	"real-balance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register with username, email and password plus optional profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	if _, err := h.authService.Register(c.Context(), &req); err != nil {
		h.logger.Warn("Registration failed", zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "User registered successfully",
	})
}

// Login godoc
// @Summary Login user
// @Description Login with a username or email and a password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		h.logger.Warn("Login failed", zap.Error(err))
		return err
	}

	return c.JSON(resp)
}

// GetProfile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update any subset of profile fields; returns a fresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	resp, err := h.authService.UpdateProfile(c.Context(), user, &req)
	if err != nil {
		h.logger.Warn("Profile update failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.JSON(resp)
}

// UpdatePreferences godoc
// @Summary Update display preferences
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.UpdatePreferencesRequest true "Preferences to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/preferences [put]
func (h *AuthHandler) UpdatePreferences(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	updated, err := h.authService.UpdatePreferences(c.Context(), user, &req)
	if err != nil {
		h.logger.Warn("Preferences update failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.JSON(dto.NewUserResponse(updated))
}

// DeleteProfile godoc
// @Summary Delete account
// @Description Delete the account together with its transactions and categories
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [delete]
func (h *AuthHandler) DeleteProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Context(), user); err != nil {
		h.logger.Error("Account deletion failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Account deleted successfully"})
}
