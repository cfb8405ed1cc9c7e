package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/21R01A7263/docGPT/pkg/logging"
)

// CORS lets a separately hosted page drive the API. The request ID is exposed
// so browser-side errors can be matched with server logs.
func CORS(allowOrigins string) fiber.Handler {
	logging.Logger.Debug("CORS configured", "allow_origins", allowOrigins)
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: fiber.HeaderXRequestID,
	})
}
