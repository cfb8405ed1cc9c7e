package handlers

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler serves the single page and the fragment for the current state.
type PageHandler struct {
	session *services.SessionService
}

func NewPageHandler(session *services.SessionService) *PageHandler {
	return &PageHandler{session: session}
}

func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.render(c, "index")
}

func (h *PageHandler) View(c *fiber.Ctx) error {
	return h.render(c, "view")
}

func (h *PageHandler) render(c *fiber.Ctx, name string) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, NewSessionView(h.session.Snapshot())); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
