package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/handlers"
)

func RegisterPageRoutes(app *fiber.App, pageHandler *handlers.PageHandler) {
	app.Get("/", pageHandler.Index)
	app.Get("/view", pageHandler.View)
	app.Get("/healthz", handlers.Health)
}

func RegisterSessionRoutes(app *fiber.App, docHandler *handlers.DocHandler, chatHandler *handlers.ChatHandler) {
	api := app.Group("/api")
	api.Get("/session", chatHandler.GetSession)
	api.Post("/document", docHandler.Upload)
	api.Post("/questions", chatHandler.AskQuestions)
	api.Post("/reset", chatHandler.Reset)
}
