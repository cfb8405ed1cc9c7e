package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/services"
)

type DocHandler struct {
	session     *services.SessionService
	maxFileSize int64
}

func NewDocHandler(session *services.SessionService, maxFileSize int64) *DocHandler {
	return &DocHandler{session: session, maxFileSize: maxFileSize}
}

// Upload accepts a multipart "file" and starts parsing it.
func (h *DocHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File required")
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "File too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		logging.Logger.Error("fail Upload open", "file", fileHeader.Filename, "error", err)
		return fiber.NewError(fiber.StatusBadRequest, "Unreadable file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		logging.Logger.Error("fail Upload read", "file", fileHeader.Filename, "error", err)
		return fiber.NewError(fiber.StatusBadRequest, "Unreadable file")
	}

	file := models.UploadedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}
	if _, err := h.session.Upload(c.UserContext(), file); err != nil {
		return sessionError(err)
	}
	return c.Status(fiber.StatusAccepted).JSON(NewSessionView(h.session.Snapshot()))
}
