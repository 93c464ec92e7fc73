package handlers

import (
	"errors"

	"nomad-nest/internal/dto"
	"nomad-nest/internal/service"

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
// @Description Register with email, password, full name and an optional profile picture
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	in := &service.RegisterInput{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		FullName: c.FormValue("full_name"),
	}

	if fh, err := c.FormFile("profile_pic"); err == nil && fh != nil && fh.Filename != "" {
		src, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open profile picture",
			})
		}
		defer src.Close()
		in.ProfilePic = &service.PhotoUpload{FileName: fh.Filename, Data: src}
	}

	user, err := h.authService.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required fields",
			})
		case errors.Is(err, service.ErrUserExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User already exists",
			})
		}
		h.logger.Error("Registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewRegisterResponse(user))
}

// Login godoc
// @Summary Login
// @Description Login with email and password, returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid password",
			})
		}
		h.logger.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		TokenType: result.TokenType,
		ExpiresIn: result.ExpiresIn,
		User:      dto.NewUserResponse(result.User),
	})
}
