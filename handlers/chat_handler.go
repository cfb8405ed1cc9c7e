package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/services"
)

type ChatHandler struct {
	session *services.SessionService
}

func NewChatHandler(session *services.SessionService) *ChatHandler {
	return &ChatHandler{session: session}
}

func (h *ChatHandler) AskQuestions(c *fiber.Ctx) error {
	var req models.AskQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, err := h.session.Ask(c.UserContext(), req.Question); err != nil {
		return sessionError(err)
	}
	return c.Status(fiber.StatusAccepted).JSON(NewSessionView(h.session.Snapshot()))
}

func (h *ChatHandler) Reset(c *fiber.Ctx) error {
	snap, err := h.session.Reset(c.UserContext())
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(NewSessionView(snap))
}

func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	return c.JSON(NewSessionView(h.session.Snapshot()))
}
