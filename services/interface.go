package services

import (
	"context"

	"github.com/21R01A7263/docGPT/models"
)

// DocumentTextProvider extracts plain text from an uploaded document.
type DocumentTextProvider interface {
	Extract(ctx context.Context, file models.UploadedFile) (string, error)
}

// AnswerProvider answers one question from the full document text.
type AnswerProvider interface {
	Answer(ctx context.Context, documentText, question string) (string, error)
}
