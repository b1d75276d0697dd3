package handlers

import (
	"real-balance/internal/dto"
	"real-balance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description The caller's categories plus the shared defaults
// @Tags categories
// @Produce json
// @Security Bearer
// @Param type query string false "income or expense"
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	categories, err := h.categoryService.List(c.Context(), user.ID, c.Query("type"))
	if err != nil {
		return err
	}

	return c.JSON(dto.NewCategoryResponses(categories))
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	category, err := h.categoryService.Create(c.Context(), user.ID, &req)
	if err != nil {
		h.logger.Warn("Failed to create category", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Delete one of the caller's own categories that no transaction uses
// @Tags categories
// @Security Bearer
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Context(), user.ID, id); err != nil {
		h.logger.Warn("Failed to delete category", zap.Int64("user_id", user.ID), zap.Int64("category_id", id), zap.Error(err))
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
