package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/handlers"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *handlers.WSHandler) {
	ws := app.Group("/ws")

	ws.Use("/session", wsHandler.WebSocketUpgrade)
	ws.Get("/session", websocket.New(wsHandler.HandleSessionEvents))
}
