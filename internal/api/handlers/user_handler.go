package handlers

import (
	"errors"

	"nomad-nest/internal/dto"
	"nomad-nest/internal/repository"
	"nomad-nest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersResponse
// @Router /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewUsersResponse(users))
}

// Search godoc
// @Summary Search users
// @Description Matches any of the given parameters (id and email exact, name partial)
// @Tags users
// @Produce json
// @Param id query string false "User id"
// @Param email query string false "Email"
// @Param name query string false "Name fragment"
// @Success 200 {object} dto.UsersResponse
// @Failure 400 {object} map[string]string
// @Router /api/users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		ID:    queryPtr(c, "id"),
		Email: queryPtr(c, "email"),
		Name:  queryPtr(c, "name"),
	}

	users, err := h.userService.Search(c.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least one search parameter (id, email, or name)",
			})
		}
		h.logger.Error("User search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewUsersResponse(users))
}
