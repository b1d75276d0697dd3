package handlers

import (
	"real-balance/internal/dto"
	"real-balance/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description The caller's transactions, newest date first
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	transactions, err := h.txService.List(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewTransactionResponses(transactions))
}

// Balance godoc
// @Summary Balance
// @Description Income minus expense over the caller's transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/transactions/balance [get]
func (h *TransactionHandler) Balance(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	balance, err := h.txService.Balance(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(balance)
}

// MonthlyStats godoc
// @Summary Monthly income and expense
// @Description Totals for one calendar month, the current one by default
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param month query string false "Month as YYYY-MM"
// @Success 200 {object} dto.MonthlyStatsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/transactions/stats [get]
func (h *TransactionHandler) MonthlyStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.txService.MonthlyStats(c.Context(), user.ID, c.Query("month"))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// CreateTransaction godoc
// @Summary Create transaction
// @Description Record a transaction for the caller; any owner in the body is ignored
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	tx, err := h.txService.Create(c.Context(), user.ID, &req)
	if err != nil {
		h.logger.Warn("Failed to create transaction", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// DeleteTransaction godoc
// @Summary Delete transaction
// @Tags transactions
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.txService.Delete(c.Context(), user.ID, id); err != nil {
		h.logger.Warn("Failed to delete transaction", zap.Int64("user_id", user.ID), zap.Int64("transaction_id", id), zap.Error(err))
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
