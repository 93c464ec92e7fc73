package handlers

import (
	"errors"

	"nomad-nest/internal/dto"
	"nomad-nest/internal/repository"
	"nomad-nest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	queryService   *service.QueryService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, queryService *service.QueryService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		queryService:   queryService,
		logger:         logger,
	}
}

// Add godoc
// @Summary Add an expense to an entry
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Entry id"
// @Param request body dto.AddExpenseRequest true "Expense"
// @Success 201 {object} dto.AddExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /api/entries/{id}/expenses [post]
func (h *ExpenseHandler) Add(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	expenseID, err := h.expenseService.Add(c.Context(), c.Params("id"), userID, service.AddExpenseInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Entry not found",
			})
		}
		h.logger.Error("Failed to add expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AddExpenseResponse{
		Message:   "Expense added successfully",
		ExpenseID: expenseID,
	})
}

// Update godoc
// @Summary Update fields of an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Entry id"
// @Param expenseID path string true "Expense id"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/entries/{id}/expenses/{expenseID} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err := h.expenseService.Update(c.Context(), c.Params("id"), c.Params("expenseID"), repository.ExpenseUpdate{
		Amount:   req.Amount,
		Category: req.Category,
		Currency: req.Currency,
	})
	if err != nil {
		return h.writeError(c, err, "No fields to update provided")
	}

	return c.JSON(fiber.Map{"message": "Expense updated successfully"})
}

// Delete godoc
// @Summary Delete one expense
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param id path string true "Expense id"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.expenseService.Delete(c.Context(), c.Params("id")); err != nil {
		return h.writeError(c, err, "")
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

// DeleteByEntry godoc
// @Summary Delete all expenses of an entry
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param id path string true "Entry id"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/entries/{id}/expenses [delete]
func (h *ExpenseHandler) DeleteByEntry(c *fiber.Ctx) error {
	if err := h.expenseService.DeleteByEntry(c.Context(), c.Params("id")); err != nil {
		return h.writeError(c, err, "")
	}

	return c.JSON(fiber.Map{"message": "All expenses for entry deleted successfully"})
}

// Search godoc
// @Summary Search expenses
// @Description Filtered expense list joined with the owning entry and its author
// @Tags expenses
// @Produce json
// @Param entry_id query string false "Entry id"
// @Param user_id query string false "User id"
// @Param category query string false "Exact category"
// @Success 200 {object} dto.ExpensesResponse
// @Failure 400 {object} map[string]string
// @Router /api/expenses/search [get]
func (h *ExpenseHandler) Search(c *fiber.Ctx) error {
	filter := repository.ExpenseFilter{
		EntryID:  queryPtr(c, "entry_id"),
		UserID:   queryPtr(c, "user_id"),
		Category: queryPtr(c, "category"),
	}

	expenses, err := h.queryService.SearchExpenses(c.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least one search parameter (entry_id, user_id, or category)",
			})
		}
		h.logger.Error("Expense search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewExpensesResponse(expenses))
}

// writeError maps expense mutation failures onto the response taxonomy:
// missing fields and unknown rows are client errors, rows still inside the
// write-settle window get a distinct conflict response instead of a generic
// failure.
func (h *ExpenseHandler) writeError(c *fiber.Ctx, err error, noFieldsMsg string) error {
	switch {
	case errors.Is(err, service.ErrNoFields) && noFieldsMsg != "":
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": noFieldsMsg,
		})
	case errors.Is(err, repository.ErrWriteBuffered):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Rows are still in the write-settle window and cannot be modified yet; retry later",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expense not found",
		})
	}
	h.logger.Error("Expense operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
