package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

var (
	ErrUnsupportedFileType = models.ErrUnsupportedFileType
	ErrNoText              = errors.New("no readable text found in document")
	ErrTooLarge            = errors.New("document exceeds the maximum upload size")
)

// Extractor turns an uploaded PDF or DOCX into plain text.
type Extractor struct {
	maxSize int64
}

// New returns an extractor. A maxSize of zero disables the size check.
func New(maxSize int64) *Extractor {
	return &Extractor{maxSize: maxSize}
}

func (e *Extractor) Extract(ctx context.Context, file models.UploadedFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.maxSize > 0 && int64(len(file.Data)) > e.maxSize {
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, len(file.Data))
	}

	var (
		text string
		err  error
	)
	switch models.ResolveContentType(file.Name, file.ContentType) {
	case models.ContentTypePDF:
		text, err = extractPDF(file.Data)
		if err != nil {
			err = fmt.Errorf("Failed to parse PDF: %w", err)
		}
	case models.ContentTypeDOCX:
		text, err = extractDOCX(file.Data)
		if err != nil {
			err = fmt.Errorf("Failed to parse DOCX: %w", err)
		}
	default:
		return "", ErrUnsupportedFileType
	}
	if err != nil {
		logging.Logger.Error("fail Extract", "file", file.Name, "error", err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	logging.Logger.Info("Extract", "file", file.Name, "chars", len(text))
	return text, nil
}
