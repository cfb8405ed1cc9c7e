package bootstrap

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/handlers"
	"github.com/21R01A7263/docGPT/middleware"
	"github.com/21R01A7263/docGPT/routes"
)

// multipart overhead on top of the file itself
const bodySlack = 1 << 20

// NewFiberApp builds the HTTP surface. Request logs go to logOutput.
func NewFiberApp(cfg *config.Config, h *Handlers, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "docgpt",
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             int(cfg.MaxFileSize) + bodySlack,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(middleware.Logger(cfg.AppEnv, logOutput))
	app.Use(middleware.CORS(cfg.AllowOrigins))

	routes.RegisterPageRoutes(app, h.PageHandler)
	routes.RegisterSessionRoutes(app, h.DocHandler, h.ChatHandler)
	routes.SetupWebSocketRoutes(app, h.WSHandler)
	return app
}
