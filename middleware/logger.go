package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logger writes one line per request. requestid must run before it.
func Logger(env string, output io.Writer) fiber.Handler {
	cfg := logger.Config{
		TimeZone: "Local",
		Output:   output,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}
	if env == "prod" {
		cfg.Format = `{"time":"${time}","request_id":"${locals:requestid}","ip":"${ip}","method":"${method}","path":"${path}","status":${status},"latency":"${latency}","bytes":${bytesSent}}` + "\n"
		cfg.TimeFormat = time.RFC3339
		return logger.New(cfg)
	}
	cfg.Format = "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path} ${error}\n"
	cfg.TimeFormat = "15:04:05"
	return logger.New(cfg)
}
