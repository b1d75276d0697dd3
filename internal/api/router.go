package api

import (
	"real-balance/docs"
	"real-balance/internal/api/handlers"
	"real-balance/pkg/config"
	"real-balance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Categories   *handlers.CategoryHandler
	Transactions *handlers.TransactionHandler
	Goals        *handlers.GoalHandler
}

func SetupRouter(
	h Handlers,
	authenticator middleware.Authenticator,
	serverCfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Real Balance API",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: errorHandler(appLogger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: serverCfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the swagger document in init()
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Real Balance API is running"})
	})

	api := app.Group("/api")
	requireAuth := middleware.AuthMiddleware(authenticator, appLogger)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/profile", requireAuth, h.Auth.GetProfile)
	auth.Put("/profile", requireAuth, h.Auth.UpdateProfile)
	auth.Put("/preferences", requireAuth, h.Auth.UpdatePreferences)
	auth.Delete("/profile", requireAuth, h.Auth.DeleteProfile)

	// Ledger routes
	categories := api.Group("/categories", requireAuth)
	categories.Get("/", h.Categories.ListCategories)
	categories.Post("/", h.Categories.CreateCategory)
	categories.Delete("/:id", h.Categories.DeleteCategory)

	transactions := api.Group("/transactions", requireAuth)
	transactions.Get("/", h.Transactions.ListTransactions)
	transactions.Get("/balance", h.Transactions.Balance)
	transactions.Get("/stats", h.Transactions.MonthlyStats)
	transactions.Post("/", h.Transactions.CreateTransaction)
	transactions.Delete("/:id", h.Transactions.DeleteTransaction)

	goals := api.Group("/goals", requireAuth)
	goals.Get("/", h.Goals.ListGoals)
	goals.Post("/", h.Goals.CreateGoal)
	goals.Delete("/:id", h.Goals.DeleteGoal)

	return app
}
