package models

import (
	"errors"
	"path/filepath"
	"strings"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	contentTypeOctetStream = "application/octet-stream"
)

var extensionContentTypes = map[string]string{
	".pdf":  ContentTypePDF,
	".docx": ContentTypeDOCX,
}

// ErrUnsupportedFileType is the one rejection for anything but PDF and DOCX,
// shared by the state machine and the extractor.
var ErrUnsupportedFileType = errors.New("Unsupported file type. Please upload a PDF or DOCX file.")

// UploadedFile is a document payload as received from the browser, the CLI or the inbox.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func IsSupportedContentType(contentType string) bool {
	return contentType == ContentTypePDF || contentType == ContentTypeDOCX
}

// ResolveContentType returns the declared type, falling back to the file extension
// when the declaration is missing or generic.
func ResolveContentType(filename, declared string) string {
	declared = strings.TrimSpace(declared)
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	declared = strings.ToLower(declared)
	if declared != "" && declared != contentTypeOctetStream {
		return declared
	}
	if ct, ok := extensionContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return declared
}

// ContentTypeForPath infers the content type of a local file from its extension.
func ContentTypeForPath(path string) string {
	return ResolveContentType(path, "")
}
