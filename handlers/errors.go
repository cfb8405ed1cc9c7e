package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/pkg/session"
)

// sessionError maps state machine rejections onto HTTP statuses.
func sessionError(err error) error {
	switch {
	case errors.Is(err, models.ErrUnsupportedFileType):
		return fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, session.ErrEmptyQuestion):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrUploadInProgress),
		errors.Is(err, session.ErrAnswerInFlight),
		errors.Is(err, session.ErrNotChatting),
		errors.Is(err, session.ErrResetWhileParsing):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

// ErrorHandler writes every error as {"error": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		logging.Logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
