package handlers

import (
	"real-balance/internal/dto"
	"real-balance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// ListGoals godoc
// @Summary List goals
// @Tags goals
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/goals [get]
func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	goals, err := h.goalService.List(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewGoalResponses(goals))
}

// CreateGoal godoc
// @Summary Create goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateGoalRequest true "Goal"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/goals [post]
func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	goal, err := h.goalService.Create(c.Context(), user.ID, &req)
	if err != nil {
		h.logger.Warn("Failed to create goal", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewGoalResponse(goal))
}

// DeleteGoal godoc
// @Summary Delete goal
// @Tags goals
// @Security Bearer
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.goalService.Delete(c.Context(), user.ID, id); err != nil {
		h.logger.Warn("Failed to delete goal", zap.Int64("user_id", user.ID), zap.Int64("goal_id", id), zap.Error(err))
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
