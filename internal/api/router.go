package api

import (
	"nomad-nest/internal/api/handlers"
	"nomad-nest/pkg/auth"
	"nomad-nest/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	entryHandler *handlers.EntryHandler,
	expenseHandler *handlers.ExpenseHandler,
	photoHandler *handlers.PhotoHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Nomad Nest API"})
	})

	// Auth routes (public)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	api := app.Group("/api")
	protected := middleware.AuthMiddleware(jwtManager, appLogger)

	// Users
	api.Get("/users", userHandler.List)
	api.Get("/users/search", userHandler.Search)

	// Entries
	api.Get("/entries", entryHandler.List)
	api.Get("/entries/search", entryHandler.Search)
	api.Post("/entries", protected, entryHandler.Create)
	api.Post("/entries/:id/photo", protected, entryHandler.AttachPhotos)

	// Expenses
	api.Get("/expenses/search", expenseHandler.Search)
	api.Post("/entries/:id/expenses", protected, expenseHandler.Add)
	api.Put("/entries/:id/expenses/:expenseID", protected, expenseHandler.Update)
	api.Delete("/entries/:id/expenses", protected, expenseHandler.DeleteByEntry)
	api.Delete("/expenses/:id", protected, expenseHandler.Delete)

	// Photos
	api.Get("/photos", photoHandler.List)
	api.Delete("/photos/delete", protected, photoHandler.Delete)

	return app
}
